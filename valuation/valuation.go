// Package valuation joins a user's holdings with oracle spot prices and
// aggregates the total portfolio value. Unavailable prices propagate as nil
// and are excluded from the total, never treated as zero.
package valuation

import (
	"context"
	"time"

	"cryptotron-backend/models"
	"cryptotron-backend/prices"
)

type Item struct {
	HoldingID       uint      `json:"id"`
	CoinAPIID       string    `json:"coin_api_id"`
	CoinSymbol      string    `json:"coin_symbol"`
	Quantity        float64   `json:"quantity"`
	AverageBuyPrice *float64  `json:"average_buy_price"`
	ExchangeWallet  *string   `json:"exchange_wallet"`
	Notes           *string   `json:"notes"`
	AddedAt         time.Time `json:"added_at"`
	CurrentPriceUSD *float64  `json:"current_price_usd"`
	CurrentValueUSD *float64  `json:"current_value_usd"`
	ProfitLossUSD   *float64  `json:"profit_loss_usd"`
}

type Result struct {
	Items         []Item  `json:"holdings"`
	TotalValueUSD float64 `json:"total_portfolio_value_usd"`
}

// ValuePortfolio resolves prices for the distinct set of asset identifiers in
// one batch call and values each holding. Output ordering mirrors the input
// holding ordering.
func ValuePortfolio(ctx context.Context, holdings []models.Holding, oracle prices.Oracle) Result {
	result := Result{Items: make([]Item, 0, len(holdings))}
	if len(holdings) == 0 {
		return result
	}

	seen := make(map[string]bool, len(holdings))
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if !seen[h.CoinAPIID] {
			seen[h.CoinAPIID] = true
			ids = append(ids, h.CoinAPIID)
		}
	}

	quotes := oracle.Prices(ctx, ids)

	for _, h := range holdings {
		item := Item{
			HoldingID:       h.ID,
			CoinAPIID:       h.CoinAPIID,
			CoinSymbol:      h.CoinSymbol,
			Quantity:        h.Quantity,
			AverageBuyPrice: h.AverageBuyPrice,
			ExchangeWallet:  h.ExchangeWallet,
			Notes:           h.Notes,
			AddedAt:         h.CreatedAt,
			CurrentPriceUSD: quotes[h.CoinAPIID],
		}

		if item.CurrentPriceUSD != nil {
			value := h.Quantity * *item.CurrentPriceUSD
			item.CurrentValueUSD = &value
			result.TotalValueUSD += value

			if h.AverageBuyPrice != nil {
				pl := (*item.CurrentPriceUSD - *h.AverageBuyPrice) * h.Quantity
				item.ProfitLossUSD = &pl
			}
		}

		result.Items = append(result.Items, item)
	}

	return result
}
