package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptotron-backend/cache"
	"cryptotron-backend/config"
	"cryptotron-backend/defi"
)

type fixedOracle struct {
	quotes map[string]*float64
}

func (f *fixedOracle) Prices(_ context.Context, ids []string) map[string]*float64 {
	out := make(map[string]*float64, len(ids))
	for _, id := range ids {
		out[id] = f.quotes[id]
	}
	return out
}

func setupDefiRoutes(t *testing.T, quotes map[string]*float64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shared := cache.NewMemory()
	adapters := []*defi.Adapter{}
	for _, src := range defi.BuiltinSources() {
		adapters = append(adapters, defi.NewAdapter(src, nil, shared, 15*time.Minute, zerolog.Nop()))
	}
	agg := defi.NewAggregator(adapters, defi.DefaultScoringConfig(), defi.DefaultToleranceCeilings(), zerolog.Nop())

	Init(&config.Config{}, &fixedOracle{quotes: quotes}, agg, nil, nil, zerolog.Nop())

	r := gin.New()
	r.GET("/api/defi/opportunities", GetYieldOpportunities)
	r.GET("/api/defi/stablecoins", GetStablecoins)
	r.GET("/api/defi/stablecoins/prices", GetStablecoinPrices)
	return r
}

func TestGetYieldOpportunities(t *testing.T) {
	router := setupDefiRoutes(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/defi/opportunities", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Opportunities []defi.YieldOpportunity `json:"opportunities"`
		Count         int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Opportunities)
	assert.Equal(t, len(body.Opportunities), body.Count)
	assert.Equal(t, 1, body.Opportunities[0].Rank)
}

func TestGetYieldOpportunitiesAssetFilter(t *testing.T) {
	router := setupDefiRoutes(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/defi/opportunities?asset=dai", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Opportunities []defi.YieldOpportunity `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Opportunities)
	for _, o := range body.Opportunities {
		assert.Equal(t, "DAI", o.Asset)
	}
}

func TestGetStablecoins(t *testing.T) {
	router := setupDefiRoutes(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/defi/stablecoins", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stablecoins []defi.Stablecoin `json:"stablecoins"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Stablecoins, 5)
	assert.Equal(t, "USDT", body.Stablecoins[0].Symbol)
}

func TestGetStablecoinPrices(t *testing.T) {
	one := 0.9998
	router := setupDefiRoutes(t, map[string]*float64{"tether": &one})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/defi/stablecoins/prices?symbols=usdt,doge", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Prices map[string]*float64 `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Prices["USDT"])
	assert.Equal(t, 0.9998, *body.Prices["USDT"])
	price, present := body.Prices["DOGE"]
	assert.True(t, present, "unknown symbols stay in the response")
	assert.Nil(t, price)
}

func TestGetStablecoinPricesRequiresSymbols(t *testing.T) {
	router := setupDefiRoutes(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/defi/stablecoins/prices", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
