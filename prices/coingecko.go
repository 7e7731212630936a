package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cryptotron-backend/cache"
)

const (
	priceRequestTimeout = 10 * time.Second
	chartRequestTimeout = 15 * time.Second
)

// CoinGeckoClient fetches spot prices in one batch call per lookup and keeps
// a short-lived per-asset cache in front of the upstream.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	log        zerolog.Logger
}

func NewCoinGeckoClient(baseURL string, c cache.Cache, cacheTTL time.Duration, log zerolog.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: chartRequestTimeout},
		cache:      c,
		cacheTTL:   cacheTTL,
		log:        log.With().Str("component", "coingecko").Logger(),
	}
}

// Prices returns the USD price for each requested identifier, nil where the
// price is unavailable. An empty input returns an empty map without touching
// the network.
func (c *CoinGeckoClient) Prices(ctx context.Context, ids []string) map[string]*float64 {
	result := make(map[string]*float64, len(ids))
	if len(ids) == 0 {
		return result
	}

	var missing []string
	for _, id := range ids {
		if _, seen := result[id]; seen {
			continue
		}
		if v, ok := c.cached(ctx, id); ok {
			result[id] = &v
			continue
		}
		result[id] = nil
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result
	}

	fetched, err := c.fetchBatch(ctx, missing)
	if err != nil {
		c.log.Warn().Err(err).Strs("ids", missing).Msg("price fetch failed, returning unavailable")
		return result
	}

	for _, id := range missing {
		if price, ok := fetched[id]; ok {
			p := price
			result[id] = &p
			c.store(ctx, id, price)
		}
	}
	return result
}

// MarketChart returns daily USD prices for the given asset over the last
// days days, oldest first.
func (c *CoinGeckoClient) MarketChart(ctx context.Context, id string, days int) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, chartRequestTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		c.baseURL, url.PathEscape(id), days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market chart fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market chart returned status %d", resp.StatusCode)
	}

	var data struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode market chart: %w", err)
	}

	out := make([]float64, 0, len(data.Prices))
	for _, point := range data.Prices {
		if len(point) == 2 {
			out = append(out, point[1])
		}
	}
	return out, nil
}

func (c *CoinGeckoClient) fetchBatch(ctx context.Context, ids []string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, priceRequestTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price endpoint returned status %d", resp.StatusCode)
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode prices: %w", err)
	}

	prices := make(map[string]float64, len(data))
	for id, quote := range data {
		if usd, ok := quote["usd"]; ok {
			prices[id] = usd
		}
	}
	return prices, nil
}

func (c *CoinGeckoClient) cached(ctx context.Context, id string) (float64, bool) {
	if c.cache == nil {
		return 0, false
	}
	raw, ok := c.cache.Get(ctx, priceCacheKey(id))
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *CoinGeckoClient) store(ctx context.Context, id string, price float64) {
	if c.cache == nil {
		return
	}
	c.cache.Set(ctx, priceCacheKey(id), []byte(strconv.FormatFloat(price, 'f', -1, 64)), c.cacheTTL)
}

func priceCacheKey(id string) string {
	return "price:" + id + ":usd"
}
