package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cryptocurrency struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Static list to avoid market-data rate limits; ids match CoinGecko.
var supportedCryptocurrencies = []cryptocurrency{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
	{ID: "tether", Symbol: "USDT", Name: "Tether"},
	{ID: "binancecoin", Symbol: "BNB", Name: "BNB"},
	{ID: "solana", Symbol: "SOL", Name: "Solana"},
	{ID: "usd-coin", Symbol: "USDC", Name: "USD Coin"},
	{ID: "ripple", Symbol: "XRP", Name: "XRP"},
	{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin"},
	{ID: "cardano", Symbol: "ADA", Name: "Cardano"},
	{ID: "avalanche-2", Symbol: "AVAX", Name: "Avalanche"},
	{ID: "shiba-inu", Symbol: "SHIB", Name: "Shiba Inu"},
	{ID: "polkadot", Symbol: "DOT", Name: "Polkadot"},
	{ID: "chainlink", Symbol: "LINK", Name: "Chainlink"},
	{ID: "tron", Symbol: "TRX", Name: "TRON"},
	{ID: "matic-network", Symbol: "MATIC", Name: "Polygon"},
	{ID: "litecoin", Symbol: "LTC", Name: "Litecoin"},
	{ID: "uniswap", Symbol: "UNI", Name: "Uniswap"},
}

// GetCryptocurrencies lists the coins the tracker supports.
func GetCryptocurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, supportedCryptocurrencies)
}
