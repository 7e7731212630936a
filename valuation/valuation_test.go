package valuation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cryptotron-backend/models"
)

// fakeOracle records every batch it is asked for.
type fakeOracle struct {
	quotes  map[string]*float64
	batches [][]string
}

func (f *fakeOracle) Prices(_ context.Context, ids []string) map[string]*float64 {
	f.batches = append(f.batches, ids)
	out := make(map[string]*float64, len(ids))
	for _, id := range ids {
		out[id] = f.quotes[id]
	}
	return out
}

func fl(v float64) *float64 { return &v }

func holding(id uint, apiID, symbol string, qty float64, avg *float64) models.Holding {
	return models.Holding{
		Model:           gorm.Model{ID: id},
		CoinAPIID:       apiID,
		CoinSymbol:      symbol,
		Quantity:        qty,
		AverageBuyPrice: avg,
	}
}

func TestValueEmptyPortfolioSkipsOracle(t *testing.T) {
	oracle := &fakeOracle{}

	got := ValuePortfolio(context.Background(), nil, oracle)

	assert.Empty(t, got.Items)
	assert.Equal(t, 0.0, got.TotalValueUSD)
	assert.Empty(t, oracle.batches, "no holdings means no oracle call")
}

func TestValuePortfolioUnavailablePriceExcludedFromTotal(t *testing.T) {
	oracle := &fakeOracle{quotes: map[string]*float64{
		"bitcoin":  fl(60000),
		"ethereum": nil,
	}}
	holdings := []models.Holding{
		holding(1, "bitcoin", "BTC", 2, nil),
		holding(2, "ethereum", "ETH", 1, nil),
	}

	got := ValuePortfolio(context.Background(), holdings, oracle)

	require.Len(t, got.Items, 2)
	assert.Equal(t, 120000.0, got.TotalValueUSD)

	require.NotNil(t, got.Items[0].CurrentValueUSD)
	assert.Equal(t, 120000.0, *got.Items[0].CurrentValueUSD)

	assert.Nil(t, got.Items[1].CurrentPriceUSD)
	assert.Nil(t, got.Items[1].CurrentValueUSD, "unavailable price stays nil, not zero")
}

func TestValuePortfolioSingleBatchWithDistinctIDs(t *testing.T) {
	oracle := &fakeOracle{quotes: map[string]*float64{
		"bitcoin": fl(60000),
		"tether":  fl(1),
	}}
	holdings := []models.Holding{
		holding(1, "bitcoin", "BTC", 1, nil),
		holding(2, "tether", "USDT", 500, nil),
		holding(3, "bitcoin", "BTC", 0.5, nil),
	}

	ValuePortfolio(context.Background(), holdings, oracle)

	require.Len(t, oracle.batches, 1, "exactly one batch lookup")
	assert.Equal(t, []string{"bitcoin", "tether"}, oracle.batches[0])
}

func TestValuePortfolioPreservesInputOrdering(t *testing.T) {
	oracle := &fakeOracle{quotes: map[string]*float64{
		"cardano": fl(0.5),
		"bitcoin": fl(60000),
		"solana":  fl(150),
	}}
	holdings := []models.Holding{
		holding(1, "cardano", "ADA", 100, nil),
		holding(2, "bitcoin", "BTC", 1, nil),
		holding(3, "solana", "SOL", 10, nil),
	}

	got := ValuePortfolio(context.Background(), holdings, oracle)

	require.Len(t, got.Items, 3)
	assert.Equal(t, "ADA", got.Items[0].CoinSymbol)
	assert.Equal(t, "BTC", got.Items[1].CoinSymbol)
	assert.Equal(t, "SOL", got.Items[2].CoinSymbol)
}

func TestValuePortfolioProfitLoss(t *testing.T) {
	oracle := &fakeOracle{quotes: map[string]*float64{"bitcoin": fl(60000)}}
	holdings := []models.Holding{
		holding(1, "bitcoin", "BTC", 2, fl(50000)),
	}

	got := ValuePortfolio(context.Background(), holdings, oracle)

	require.NotNil(t, got.Items[0].ProfitLossUSD)
	assert.Equal(t, 20000.0, *got.Items[0].ProfitLossUSD)
}

func TestValuePortfolioNoResolvablePrices(t *testing.T) {
	oracle := &fakeOracle{quotes: map[string]*float64{}}
	holdings := []models.Holding{
		holding(1, "bitcoin", "BTC", 2, nil),
	}

	got := ValuePortfolio(context.Background(), holdings, oracle)

	assert.Equal(t, 0.0, got.TotalValueUSD)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].CurrentValueUSD)
}
