package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username                string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email                   string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash            string `gorm:"size:256;not null" json:"-"`
	IsPremiumUser           bool   `gorm:"not null;default:false" json:"is_premium_user"`
	DataMonetizationConsent bool   `gorm:"not null;default:false" json:"data_monetization_consent"`

	Holdings []Holding `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
