package defi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const yieldRequestTimeout = 15 * time.Second

// Source produces raw yield opportunities for the adapter. Implementations
// return every record they know about; retention rules (allow-list, positive
// APY) are the adapter's job.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]YieldOpportunity, error)
}

// StaticSource serves a fixed catalog. Fetch never fails and always
// reproduces the same records.
type StaticSource struct {
	name    string
	catalog []YieldOpportunity
}

func NewStaticSource(name string, catalog []YieldOpportunity) *StaticSource {
	return &StaticSource{name: name, catalog: catalog}
}

func (s *StaticSource) Name() string { return s.name }

func (s *StaticSource) Fetch(_ context.Context) ([]YieldOpportunity, error) {
	out := make([]YieldOpportunity, len(s.catalog))
	copy(out, s.catalog)
	return out, nil
}

// LlamaSource fetches pool yields from a DeFiLlama-compatible endpoint.
// Raw records get a derived risk level before they reach the adapter cache.
type LlamaSource struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewLlamaSource(baseURL string, log zerolog.Logger) *LlamaSource {
	return &LlamaSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: yieldRequestTimeout},
		log:        log.With().Str("component", "llama-source").Logger(),
	}
}

func (s *LlamaSource) Name() string { return "defillama" }

func (s *LlamaSource) Fetch(ctx context.Context) ([]YieldOpportunity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/pools", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pools fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pools endpoint returned status %d", resp.StatusCode)
	}

	var data struct {
		Data []struct {
			Project   string  `json:"project"`
			Symbol    string  `json:"symbol"`
			APY       float64 `json:"apy"`
			APYBase   float64 `json:"apyBase"`
			APYReward float64 `json:"apyReward"`
			TVLUSD    float64 `json:"tvlUsd"`
			Chain     string  `json:"chain"`
			Pool      string  `json:"pool"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	out := make([]YieldOpportunity, 0, len(data.Data))
	for _, pool := range data.Data {
		out = append(out, YieldOpportunity{
			Protocol:          pool.Project,
			Asset:             strings.ToUpper(pool.Symbol),
			APY:               pool.APY,
			TotalLiquidityUSD: pool.TVLUSD,
			RiskLevel:         AssessRiskLevel(pool.TVLUSD, pool.APY),
			Chain:             pool.Chain,
		})
	}
	return out, nil
}
