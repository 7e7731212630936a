package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cryptotron-backend/config"
	"cryptotron-backend/defi"
	"cryptotron-backend/models"
)

// GetYieldOpportunities lists ranked stablecoin yield opportunities,
// optionally filtered to one asset.
func GetYieldOpportunities(c *gin.Context) {
	opportunities := aggregator.AggregateAll(c.Request.Context(), c.Query("asset"))

	c.JSON(http.StatusOK, gin.H{
		"opportunities": opportunities,
		"count":         len(opportunities),
	})
}

// GetRecommendations returns personalized yield recommendations for the
// caller's stablecoin holdings.
func GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tolerance := c.DefaultQuery("risk_tolerance", "medium")

	var holdings []models.Holding
	if err := config.DB.Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load holdings"})
		return
	}

	recommendations, err := aggregator.Recommend(c.Request.Context(), holdings, tolerance)
	if err != nil {
		if errors.Is(err, defi.ErrUnknownTolerance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "risk_tolerance must be low, medium or high"})
			return
		}
		log.Error().Err(err).Msg("recommendation run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"risk_tolerance":  strings.ToLower(tolerance),
		"count":           len(recommendations),
	})
}

// GetStablecoins returns the supported stablecoin registry.
func GetStablecoins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stablecoins": defi.SupportedStablecoins()})
}

// GetStablecoinPrices resolves USD prices for the requested stablecoin
// symbols. Unknown or unavailable symbols come back as null.
func GetStablecoinPrices(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}

	symbols := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"prices": defi.StablecoinPrices(c.Request.Context(), oracle, symbols),
	})
}

// GetStablecoinStability runs the peg-stability analysis for one stablecoin.
func GetStablecoinStability(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	report, err := analyzer.Analyze(c.Request.Context(), c.Param("symbol"), days)
	if err != nil {
		if errors.Is(err, defi.ErrNotStablecoin) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unsupported stablecoin symbol"})
			return
		}
		log.Error().Err(err).Str("symbol", c.Param("symbol")).Msg("stability analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "price history is currently unavailable"})
		return
	}

	c.JSON(http.StatusOK, report)
}
