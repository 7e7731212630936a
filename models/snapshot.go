package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceSnapshot is a periodically recorded spot price, written in batches by
// the snapshot job.
type PriceSnapshot struct {
	gorm.Model
	CoinAPIID string `gorm:"size:100;index"`
	Symbol    string `gorm:"size:20;index"`
	PriceUSD  float64
	Timestamp time.Time
}
