// Package defi aggregates stablecoin yield opportunities from protocol
// sources, derives risk metadata and produces personalized recommendations
// against a user's holdings.
package defi

import (
	"strings"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type Category string

const (
	CategoryLending       Category = "Lending"
	CategoryLiquidityPool Category = "Liquidity Pool"
	CategoryYieldVault    Category = "Yield Vault"
	CategoryOther         Category = "Other"
)

// YieldOpportunity is one protocol×asset yield record. Rank, Category and
// RiskScore are derived by the aggregator, never persisted, and recomputed
// per request.
type YieldOpportunity struct {
	Protocol          string    `json:"protocol"`
	Asset             string    `json:"asset"`
	APY               float64   `json:"apy"`
	TotalLiquidityUSD float64   `json:"total_liquidity_usd"`
	RiskLevel         RiskLevel `json:"risk_level"`
	RiskScore         int       `json:"risk_score"`
	Category          Category  `json:"category"`
	Rank              int       `json:"rank"`
	Chain             string    `json:"chain,omitempty"`
	MinimumDeposit    float64   `json:"minimum_deposit,omitempty"`
}

// Recommendation is a yield opportunity weighted by the quantity a user
// actually holds.
type Recommendation struct {
	YieldOpportunity
	UserHoldingQuantity  float64 `json:"user_holding_quantity"`
	PotentialAnnualYield float64 `json:"potential_annual_yield"`
	Reason               string  `json:"recommendation_reason"`
}

// ScoringConfig holds the risk-score weights. The defaults are hand-tuned
// legacy constants — policy, not physics — kept overridable so a deployment
// can adjust them without a code change.
type ScoringConfig struct {
	Base int

	LendingBonus int // protocol mentions aave or compound
	CurveBonus   int // protocol mentions curve
	YearnBonus   int // protocol mentions yearn

	HighAPYThreshold float64
	HighAPYPenalty   int
	MidAPYThreshold  float64
	MidAPYPenalty    int

	ThinLiquidityUSD     float64
	ThinLiquidityPenalty int
	DeepLiquidityUSD     float64
	DeepLiquidityCredit  int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Base:                 20,
		LendingBonus:         10,
		CurveBonus:           25,
		YearnBonus:           30,
		HighAPYThreshold:     10,
		HighAPYPenalty:       20,
		MidAPYThreshold:      5,
		MidAPYPenalty:        10,
		ThinLiquidityUSD:     100_000_000,
		ThinLiquidityPenalty: 15,
		DeepLiquidityUSD:     1_000_000_000,
		DeepLiquidityCredit:  10,
	}
}

// Score derives the risk score for an opportunity, clamped to [1,100].
// Lower is safer.
func (c ScoringConfig) Score(o YieldOpportunity) int {
	score := c.Base

	protocol := strings.ToLower(o.Protocol)
	switch {
	case strings.Contains(protocol, "aave") || strings.Contains(protocol, "compound"):
		score += c.LendingBonus
	case strings.Contains(protocol, "curve"):
		score += c.CurveBonus
	case strings.Contains(protocol, "yearn"):
		score += c.YearnBonus
	}

	switch {
	case o.APY > c.HighAPYThreshold:
		score += c.HighAPYPenalty
	case o.APY > c.MidAPYThreshold:
		score += c.MidAPYPenalty
	}

	switch {
	case o.TotalLiquidityUSD < c.ThinLiquidityUSD:
		score += c.ThinLiquidityPenalty
	case o.TotalLiquidityUSD > c.DeepLiquidityUSD:
		score -= c.DeepLiquidityCredit
	}

	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

// Categorize maps a protocol name to an opportunity category.
func Categorize(protocol string) Category {
	p := strings.ToLower(protocol)
	switch {
	case strings.Contains(p, "aave") || strings.Contains(p, "compound"):
		return CategoryLending
	case strings.Contains(p, "curve"):
		return CategoryLiquidityPool
	case strings.Contains(p, "yearn"):
		return CategoryYieldVault
	default:
		return CategoryOther
	}
}

// AssessRiskLevel classifies a raw upstream record from its total value
// locked and APY. Applied before caching; fixture catalogs carry their own
// stated levels.
func AssessRiskLevel(tvlUSD, apy float64) RiskLevel {
	switch {
	case tvlUSD > 1_000_000_000 && apy < 10:
		return RiskLow
	case tvlUSD > 100_000_000 || apy < 15:
		return RiskMedium
	default:
		return RiskHigh
	}
}
