package defi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptotron-backend/cache"
)

// countingSource tracks how often the adapter reaches upstream.
type countingSource struct {
	name  string
	opps  []YieldOpportunity
	err   error
	calls int
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Fetch(_ context.Context) ([]YieldOpportunity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]YieldOpportunity, len(s.opps))
	copy(out, s.opps)
	return out, nil
}

func newAdapter(source Source, fallback []YieldOpportunity) *Adapter {
	return NewAdapter(source, fallback, cache.NewMemory(), 15*time.Minute, zerolog.Nop())
}

func TestAdapterCacheHitSkipsSource(t *testing.T) {
	source := &countingSource{name: "aave", opps: aaveCatalog}
	adapter := newAdapter(source, nil)
	ctx := context.Background()

	first := adapter.Fetch(ctx, "")
	second := adapter.Fetch(ctx, "")

	assert.Equal(t, 1, source.calls, "second fetch inside the TTL must be a cache hit")
	assert.Equal(t, first, second, "cache hit returns the stored list unchanged")
}

func TestAdapterCacheKeyedByFilter(t *testing.T) {
	source := &countingSource{name: "all", opps: BuiltinCatalog()}
	adapter := newAdapter(source, nil)
	ctx := context.Background()

	all := adapter.Fetch(ctx, "")
	aaveOnly := adapter.Fetch(ctx, "aave")

	assert.Equal(t, 2, source.calls, "distinct filters are distinct cache entries")
	assert.Greater(t, len(all), len(aaveOnly))
	for _, o := range aaveOnly {
		assert.Equal(t, "Aave V3", o.Protocol)
	}
}

func TestAdapterFallbackOnUpstreamFailure(t *testing.T) {
	source := &countingSource{name: "defillama", err: errors.New("connection refused")}
	ctx := context.Background()

	first := newAdapter(source, BuiltinCatalog()).Fetch(ctx, "")
	second := newAdapter(source, BuiltinCatalog()).Fetch(ctx, "")

	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "fallback must reproduce the same records every call")
	assert.Equal(t, BuiltinCatalog(), first)
}

func TestAdapterFallbackHonorsFilter(t *testing.T) {
	source := &countingSource{name: "defillama", err: errors.New("timeout")}
	adapter := newAdapter(source, BuiltinCatalog())

	got := adapter.Fetch(context.Background(), "yearn")

	require.NotEmpty(t, got)
	for _, o := range got {
		assert.Equal(t, "Yearn Finance", o.Protocol)
	}
}

func TestAdapterRetentionRules(t *testing.T) {
	source := &countingSource{name: "mixed", opps: []YieldOpportunity{
		{Protocol: "Aave V3", Asset: "USDC", APY: 4.2, TotalLiquidityUSD: 1e9},
		{Protocol: "Aave V3", Asset: "WBTC", APY: 1.1, TotalLiquidityUSD: 5e8},
		{Protocol: "Curve Finance", Asset: "DAI", APY: 0, TotalLiquidityUSD: 2e9},
		{Protocol: "Curve Finance", Asset: "USDT", APY: -3, TotalLiquidityUSD: 2e9},
		{Protocol: "Yearn Finance", Asset: "FRAX", APY: 7.5, TotalLiquidityUSD: 9e7},
	}}
	adapter := newAdapter(source, nil)

	got := adapter.Fetch(context.Background(), "")

	require.Len(t, got, 2, "non-stablecoins and non-positive APY are dropped")
	assert.Equal(t, "USDC", got[0].Asset)
	assert.Equal(t, "FRAX", got[1].Asset)
}

func TestLlamaSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pools", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"project":"aave-v3","symbol":"usdc","apy":4.1,"tvlUsd":2000000000,"chain":"Ethereum","pool":"a"},
			{"project":"curve-dex","symbol":"USDT","apy":12.5,"tvlUsd":500000000,"chain":"Ethereum","pool":"b"},
			{"project":"unknown-farm","symbol":"DAI","apy":44.0,"tvlUsd":50000000,"chain":"Arbitrum","pool":"c"}
		]}`))
	}))
	defer srv.Close()

	source := NewLlamaSource(srv.URL, zerolog.Nop())
	got, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "aave-v3", got[0].Protocol)
	assert.Equal(t, "USDC", got[0].Asset, "symbols are normalized to upper case")
	assert.Equal(t, RiskLow, got[0].RiskLevel)
	assert.Equal(t, RiskMedium, got[1].RiskLevel)
	assert.Equal(t, RiskHigh, got[2].RiskLevel)
}

func TestLlamaSourceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewLlamaSource(srv.URL, zerolog.Nop()).Fetch(context.Background())
	assert.Error(t, err)
}

func TestAssessRiskLevel(t *testing.T) {
	tests := []struct {
		name string
		tvl  float64
		apy  float64
		want RiskLevel
	}{
		{"deep liquidity, modest yield", 2e9, 4, RiskLow},
		{"deep liquidity, hot yield", 2e9, 12, RiskMedium},
		{"mid liquidity", 5e8, 20, RiskMedium},
		{"thin liquidity, low yield", 1e7, 3, RiskMedium},
		{"thin liquidity, hot yield", 1e7, 30, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessRiskLevel(tt.tvl, tt.apy))
		})
	}
}
