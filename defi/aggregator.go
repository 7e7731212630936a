package defi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"cryptotron-backend/models"
)

const (
	recommendationsPerHolding = 3
	maxRecommendations        = 10
	highAPYMention            = 5.0
	highLiquidityMention      = 500_000_000
)

// ErrUnknownTolerance is returned for a risk tolerance outside
// {low, medium, high}. Callers surface it as a client input error; tolerance
// is never silently defaulted.
var ErrUnknownTolerance = errors.New("unknown risk tolerance")

// ToleranceCeilings maps a risk tolerance to the maximum acceptable risk
// score. Defaults are the legacy constants; override via config if exact
// compatibility is not required.
type ToleranceCeilings struct {
	Low    int
	Medium int
	High   int
}

func DefaultToleranceCeilings() ToleranceCeilings {
	return ToleranceCeilings{Low: 40, Medium: 60, High: 100}
}

// For resolves the ceiling for a tolerance string, case-insensitively.
func (t ToleranceCeilings) For(tolerance string) (int, error) {
	switch strings.ToLower(tolerance) {
	case "low":
		return t.Low, nil
	case "medium":
		return t.Medium, nil
	case "high":
		return t.High, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTolerance, tolerance)
	}
}

// Aggregator concatenates the configured adapters and derives ranking, risk
// score and category per request.
type Aggregator struct {
	adapters []*Adapter
	scoring  ScoringConfig
	ceilings ToleranceCeilings
	log      zerolog.Logger
}

func NewAggregator(adapters []*Adapter, scoring ScoringConfig, ceilings ToleranceCeilings, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		scoring:  scoring,
		ceilings: ceilings,
		log:      log.With().Str("component", "yield-aggregator").Logger(),
	}
}

// AggregateAll returns every opportunity across all adapters, optionally
// filtered to one asset (case-insensitive exact match), sorted descending by
// APY. Ties keep the original concatenation order. Rank, category and risk
// score are assigned after sorting.
func (g *Aggregator) AggregateAll(ctx context.Context, assetFilter string) []YieldOpportunity {
	all := []YieldOpportunity{}
	for _, a := range g.adapters {
		all = append(all, a.Fetch(ctx, "")...)
	}

	if assetFilter != "" {
		asset := strings.ToUpper(assetFilter)
		filtered := all[:0]
		for _, o := range all {
			if strings.ToUpper(o.Asset) == asset {
				filtered = append(filtered, o)
			}
		}
		all = filtered
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].APY > all[j].APY
	})

	for i := range all {
		all[i].Rank = i + 1
		all[i].Category = Categorize(all[i].Protocol)
		all[i].RiskScore = g.scoring.Score(all[i])
	}
	return all
}

// Recommend produces personalized recommendations for the user's stablecoin
// holdings: per qualifying holding, the top opportunities within the
// tolerance ceiling, weighted by held quantity, merged and truncated to the
// overall best.
func (g *Aggregator) Recommend(ctx context.Context, holdings []models.Holding, tolerance string) ([]Recommendation, error) {
	ceiling, err := g.ceilings.For(tolerance)
	if err != nil {
		return nil, err
	}

	recommendations := []Recommendation{}
	for _, h := range holdings {
		asset := strings.ToUpper(h.CoinSymbol)
		if !IsStablecoin(asset) {
			continue
		}

		kept := 0
		for _, opp := range g.AggregateAll(ctx, asset) {
			if opp.RiskScore > ceiling {
				continue
			}
			if kept == recommendationsPerHolding {
				break
			}
			kept++

			recommendations = append(recommendations, Recommendation{
				YieldOpportunity:     opp,
				UserHoldingQuantity:  h.Quantity,
				PotentialAnnualYield: h.Quantity * opp.APY / 100,
				Reason:               recommendationReason(opp, asset, tolerance),
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PotentialAnnualYield > recommendations[j].PotentialAnnualYield
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

func recommendationReason(opp YieldOpportunity, asset, tolerance string) string {
	var reasons []string

	if opp.APY > highAPYMention {
		reasons = append(reasons, fmt.Sprintf("High APY of %.2f%%", opp.APY))
	}
	if opp.RiskLevel == RiskLow && strings.EqualFold(tolerance, "low") {
		reasons = append(reasons, "Matches your low risk preference")
	}
	if opp.Protocol == "Aave V3" || opp.Protocol == "Compound V3" {
		reasons = append(reasons, "Established and secure protocol")
	}
	if opp.TotalLiquidityUSD > highLiquidityMention {
		reasons = append(reasons, "High liquidity pool")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("Good yield opportunity for %s", asset)
	}
	return strings.Join(reasons, "; ")
}
