package defi

import (
	"context"
	"strings"

	"cryptotron-backend/prices"
)

// Stablecoin describes one entry of the fixed allow-list of symbols treated
// as yield-eligible collateral.
type Stablecoin struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	CoinGeckoID      string   `json:"coingecko_id"`
	EthereumContract string   `json:"ethereum_contract"`
	Chains           []string `json:"chains"`
}

var stablecoins = []Stablecoin{
	{
		Symbol:           "USDT",
		Name:             "Tether",
		CoinGeckoID:      "tether",
		EthereumContract: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Chains:           []string{"ethereum", "tron", "bsc", "polygon"},
	},
	{
		Symbol:           "USDC",
		Name:             "USD Coin",
		CoinGeckoID:      "usd-coin",
		EthereumContract: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Chains:           []string{"ethereum", "polygon", "avalanche", "solana"},
	},
	{
		Symbol:           "DAI",
		Name:             "Dai",
		CoinGeckoID:      "dai",
		EthereumContract: "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		Chains:           []string{"ethereum", "polygon", "bsc"},
	},
	{
		Symbol:           "BUSD",
		Name:             "Binance USD",
		CoinGeckoID:      "binance-usd",
		EthereumContract: "0x4Fabb145d64652a948d72533023f6E7A623C7C53",
		Chains:           []string{"ethereum", "bsc"},
	},
	{
		Symbol:           "FRAX",
		Name:             "Frax",
		CoinGeckoID:      "frax",
		EthereumContract: "0x853d955aCEf822Db058eb8505911ED77F175b99e",
		Chains:           []string{"ethereum", "polygon", "avalanche"},
	},
}

var stablecoinsBySymbol = func() map[string]Stablecoin {
	m := make(map[string]Stablecoin, len(stablecoins))
	for _, s := range stablecoins {
		m[s.Symbol] = s
	}
	return m
}()

// IsStablecoin reports whether symbol is on the allow-list.
// Case-insensitive.
func IsStablecoin(symbol string) bool {
	_, ok := stablecoinsBySymbol[strings.ToUpper(symbol)]
	return ok
}

// StablecoinBySymbol returns the registry entry for symbol.
func StablecoinBySymbol(symbol string) (Stablecoin, bool) {
	s, ok := stablecoinsBySymbol[strings.ToUpper(symbol)]
	return s, ok
}

// SupportedStablecoins returns the registry in its fixed order.
func SupportedStablecoins() []Stablecoin {
	out := make([]Stablecoin, len(stablecoins))
	copy(out, stablecoins)
	return out
}

// StablecoinPrices resolves USD prices for the given stablecoin symbols in a
// single oracle batch. Unknown symbols and unavailable prices map to nil.
func StablecoinPrices(ctx context.Context, oracle prices.Oracle, symbols []string) map[string]*float64 {
	result := make(map[string]*float64, len(symbols))

	idBySymbol := make(map[string]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		symbol := strings.ToUpper(raw)
		result[symbol] = nil
		s, ok := stablecoinsBySymbol[symbol]
		if !ok {
			continue
		}
		if _, seen := idBySymbol[symbol]; seen {
			continue
		}
		idBySymbol[symbol] = s.CoinGeckoID
		ids = append(ids, s.CoinGeckoID)
	}
	if len(ids) == 0 {
		return result
	}

	quotes := oracle.Prices(ctx, ids)
	for symbol, id := range idBySymbol {
		result[symbol] = quotes[id]
	}
	return result
}
