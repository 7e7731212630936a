package defi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	quotes  map[string]*float64
	batches [][]string
}

func (s *stubOracle) Prices(_ context.Context, ids []string) map[string]*float64 {
	s.batches = append(s.batches, ids)
	out := make(map[string]*float64, len(ids))
	for _, id := range ids {
		out[id] = s.quotes[id]
	}
	return out
}

func TestIsStablecoin(t *testing.T) {
	assert.True(t, IsStablecoin("USDC"))
	assert.True(t, IsStablecoin("usdt"))
	assert.False(t, IsStablecoin("BTC"))
	assert.False(t, IsStablecoin(""))
}

func TestSupportedStablecoinsFixedOrder(t *testing.T) {
	got := SupportedStablecoins()
	require.Len(t, got, 5)
	symbols := make([]string, len(got))
	for i, s := range got {
		symbols[i] = s.Symbol
	}
	assert.Equal(t, []string{"USDT", "USDC", "DAI", "BUSD", "FRAX"}, symbols)
}

func TestStablecoinPrices(t *testing.T) {
	one := 1.0
	oracle := &stubOracle{quotes: map[string]*float64{
		"tether":   &one,
		"usd-coin": nil,
	}}

	got := StablecoinPrices(context.Background(), oracle, []string{"usdt", "USDC", "DOGE"})

	require.Len(t, got, 3)
	require.NotNil(t, got["USDT"])
	assert.Equal(t, 1.0, *got["USDT"])
	assert.Nil(t, got["USDC"], "unavailable upstream price stays nil")
	assert.Nil(t, got["DOGE"], "unknown symbols map to nil, not an error")

	require.Len(t, oracle.batches, 1, "one oracle batch per lookup")
	assert.ElementsMatch(t, []string{"tether", "usd-coin"}, oracle.batches[0])
}

func TestStablecoinPricesEmptyInput(t *testing.T) {
	oracle := &stubOracle{}
	got := StablecoinPrices(context.Background(), oracle, nil)
	assert.Empty(t, got)
	assert.Empty(t, oracle.batches)
}
