package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptotron-backend/config"
	"cryptotron-backend/models"
)

type dataConsentRequest struct {
	Consent *bool `json:"consent" binding:"required"`
}

// UpdateDataConsent toggles the data monetization consent preference.
func UpdateDataConsent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dataConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Consent == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consent must be a boolean"})
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("data_monetization_consent", *req.Consent)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preference"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                   "preference updated",
		"data_monetization_consent": *req.Consent,
	})
}
