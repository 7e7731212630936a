// Package handlers contains the gin HTTP handlers for the API surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cryptotron-backend/config"
	"cryptotron-backend/defi"
	"cryptotron-backend/prices"
	"cryptotron-backend/storage"
)

// Shared collaborators, wired once at boot by Init. The database and Redis
// connections are reached through the config package globals.
var (
	cfg        *config.Config
	oracle     prices.Oracle
	aggregator *defi.Aggregator
	analyzer   *defi.StabilityAnalyzer
	vault      *storage.SnapshotVault // nil disables snapshot export
	log        zerolog.Logger
)

// Init wires the handler package dependencies. Must be called before any
// route is served.
func Init(c *config.Config, o prices.Oracle, agg *defi.Aggregator, an *defi.StabilityAnalyzer, v *storage.SnapshotVault, l zerolog.Logger) {
	cfg = c
	oracle = o
	aggregator = agg
	analyzer = an
	vault = v
	log = l.With().Str("component", "handlers").Logger()
}

// currentUserID reads the user id stored by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	id := c.GetUint("user_id")
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return id, true
}
