package defi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotStablecoin = errors.New("not a supported stablecoin")
	ErrNoHistory     = errors.New("no price history available")
)

// ChartSource supplies daily historical prices, oldest first.
type ChartSource interface {
	MarketChart(ctx context.Context, id string, days int) ([]float64, error)
}

// StabilityReport summarizes how well a stablecoin held its peg over a
// period. StabilityScore is 0-100, higher is steadier.
type StabilityReport struct {
	Symbol                 string    `json:"symbol"`
	PeriodDays             int       `json:"period_days"`
	AveragePrice           float64   `json:"average_price"`
	MaxPrice               float64   `json:"max_price"`
	MinPrice               float64   `json:"min_price"`
	PriceRange             float64   `json:"price_range"`
	StandardDeviation      float64   `json:"standard_deviation"`
	CoefficientOfVariation float64   `json:"coefficient_of_variation"`
	StabilityScore         float64   `json:"stability_score"`
	AnalyzedAt             time.Time `json:"analysis_date"`
}

// StabilityAnalyzer computes peg-stability metrics from market-chart history.
type StabilityAnalyzer struct {
	charts ChartSource
	log    zerolog.Logger
}

func NewStabilityAnalyzer(charts ChartSource, log zerolog.Logger) *StabilityAnalyzer {
	return &StabilityAnalyzer{
		charts: charts,
		log:    log.With().Str("component", "stability").Logger(),
	}
}

func (a *StabilityAnalyzer) Analyze(ctx context.Context, symbol string, days int) (*StabilityReport, error) {
	coin, ok := StablecoinBySymbol(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotStablecoin, symbol)
	}
	if days <= 0 {
		days = 30
	}

	history, err := a.charts.MarketChart(ctx, coin.CoinGeckoID, days)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", coin.Symbol, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, coin.Symbol)
	}

	var sum, maxPrice float64
	minPrice := math.Inf(1)
	for _, p := range history {
		sum += p
		if p > maxPrice {
			maxPrice = p
		}
		if p < minPrice {
			minPrice = p
		}
	}
	avg := sum / float64(len(history))

	var variance float64
	for _, p := range history {
		variance += (p - avg) * (p - avg)
	}
	variance /= float64(len(history))
	stddev := math.Sqrt(variance)

	var cv float64
	if avg > 0 {
		cv = stddev / avg * 100
	}
	score := math.Max(0, 100-cv*10)

	return &StabilityReport{
		Symbol:                 coin.Symbol,
		PeriodDays:             days,
		AveragePrice:           round(avg, 6),
		MaxPrice:               round(maxPrice, 6),
		MinPrice:               round(minPrice, 6),
		PriceRange:             round(maxPrice-minPrice, 6),
		StandardDeviation:      round(stddev, 6),
		CoefficientOfVariation: round(cv, 4),
		StabilityScore:         round(score, 4),
		AnalyzedAt:             time.Now().UTC(),
	}, nil
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
