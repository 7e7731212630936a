package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cryptotron-backend/config"
	"cryptotron-backend/models"
	"cryptotron-backend/valuation"
)

type holdingRequest struct {
	CoinAPIID       string   `json:"coin_api_id" binding:"required"`
	CoinSymbol      string   `json:"coin_symbol" binding:"required"`
	Quantity        float64  `json:"quantity" binding:"required"`
	AverageBuyPrice *float64 `json:"average_buy_price"`
	ExchangeWallet  *string  `json:"exchange_wallet"`
	Notes           *string  `json:"notes"`
}

type holdingUpdateRequest struct {
	Quantity        *float64 `json:"quantity"`
	AverageBuyPrice *float64 `json:"average_buy_price"`
	ExchangeWallet  *string  `json:"exchange_wallet"`
	Notes           *string  `json:"notes"`
}

// GetPortfolio returns the user's holdings valued at live prices. Premium
// users also get the analytics block.
func GetPortfolio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Preload("Holdings").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	result := valuation.ValuePortfolio(c.Request.Context(), user.Holdings, oracle)

	var analytics interface{} = "Upgrade to Premium for advanced analytics and AI rebalancing suggestions."
	if user.IsPremiumUser {
		analytics = premiumAnalytics()
	}

	c.JSON(http.StatusOK, gin.H{
		"holdings":                  result.Items,
		"total_portfolio_value_usd": result.TotalValueUSD,
		"is_premium_user":           user.IsPremiumUser,
		"premium_analytics":         analytics,
	})
}

// premiumAnalytics is a placeholder until the analytics pipeline lands.
func premiumAnalytics() gin.H {
	return gin.H{
		"portfolio_risk_assessment": "Medium",
		"rebalancing_suggestions": []gin.H{
			{"action": "Consider selling some BTC", "reason": "Over-concentration"},
			{"action": "Consider buying some DOT", "reason": "Diversification"},
		},
		"market_sentiment": "Neutral",
	}
}

// AddHolding creates a holding, enforcing the free-tier cap.
func AddHolding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin_api_id, coin_symbol and quantity are required"})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	if req.AverageBuyPrice != nil && *req.AverageBuyPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "average_buy_price must not be negative"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if !user.IsPremiumUser {
		var count int64
		config.DB.Model(&models.Holding{}).Where("user_id = ?", userID).Count(&count)
		if count >= int64(cfg.FreeTierHoldingLimit) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("free tier limited to %d holdings, upgrade to premium for unlimited holdings", cfg.FreeTierHoldingLimit),
			})
			return
		}
	}

	holding := models.Holding{
		UserID:          userID,
		CoinAPIID:       strings.ToLower(req.CoinAPIID),
		CoinSymbol:      strings.ToUpper(req.CoinSymbol),
		Quantity:        req.Quantity,
		AverageBuyPrice: req.AverageBuyPrice,
		ExchangeWallet:  req.ExchangeWallet,
		Notes:           req.Notes,
	}
	if err := config.DB.Create(&holding).Error; err != nil {
		log.Error().Err(err).Msg("holding insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add holding"})
		return
	}

	valued := valuation.ValuePortfolio(c.Request.Context(), []models.Holding{holding}, oracle)
	c.JSON(http.StatusCreated, gin.H{
		"message": "holding added successfully",
		"holding": valued.Items[0],
	})
}

// UpdateHolding replaces exactly the fields present in the request body.
func UpdateHolding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var holding models.Holding
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load holding"})
		return
	}

	var req holdingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		holding.Quantity = *req.Quantity
	}
	if req.AverageBuyPrice != nil {
		if *req.AverageBuyPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "average_buy_price must not be negative"})
			return
		}
		holding.AverageBuyPrice = req.AverageBuyPrice
	}
	if req.ExchangeWallet != nil {
		holding.ExchangeWallet = req.ExchangeWallet
	}
	if req.Notes != nil {
		holding.Notes = req.Notes
	}

	if err := config.DB.Save(&holding).Error; err != nil {
		log.Error().Err(err).Msg("holding update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update holding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "holding updated successfully", "holding": holding})
}

// DeleteHolding removes a holding owned by the caller.
func DeleteHolding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Holding{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete holding"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "holding deleted successfully"})
}

// ExportPortfolio values the portfolio, encrypts the snapshot and stores it
// in the configured bucket.
func ExportPortfolio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if vault == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot export is not configured"})
		return
	}

	var holdings []models.Holding
	if err := config.DB.Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load holdings"})
		return
	}

	result := valuation.ValuePortfolio(c.Request.Context(), holdings, oracle)
	payload, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export portfolio"})
		return
	}

	key, err := vault.Save(c.Request.Context(), userID, payload)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("snapshot export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export portfolio"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "portfolio snapshot exported", "snapshot_key": key})
}
