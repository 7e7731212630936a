package models

import (
	"gorm.io/gorm"
)

// Holding is a single coin position owned by one user. CoinAPIID is the
// market-data identifier (e.g. "bitcoin"), CoinSymbol the ticker ("BTC").
type Holding struct {
	gorm.Model
	UserID          uint     `gorm:"index;not null" json:"-"`
	CoinAPIID       string   `gorm:"size:100;index;not null" json:"coin_api_id"`
	CoinSymbol      string   `gorm:"size:20;not null" json:"coin_symbol"`
	Quantity        float64  `gorm:"not null" json:"quantity"`
	AverageBuyPrice *float64 `json:"average_buy_price"`
	ExchangeWallet  *string  `gorm:"size:100" json:"exchange_wallet"`
	Notes           *string  `json:"notes"`
}
