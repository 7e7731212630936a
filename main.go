package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptotron-backend/cache"
	"cryptotron-backend/config"
	"cryptotron-backend/database"
	"cryptotron-backend/defi"
	"cryptotron-backend/handlers"
	"cryptotron-backend/jobs"
	"cryptotron-backend/middleware"
	"cryptotron-backend/prices"
	"cryptotron-backend/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	config.InitDB(cfg)
	config.InitRedis(cfg)
	if err := database.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	store := cache.NewRedis(config.Rdb)
	oracle := prices.NewCoinGeckoClient(cfg.CoinGeckoURL, store, cfg.PriceCacheTTL, log.Logger)

	adapters := buildYieldAdapters(cfg, store)
	aggregator := defi.NewAggregator(adapters, defi.DefaultScoringConfig(), defi.DefaultToleranceCeilings(), log.Logger)
	analyzer := defi.NewStabilityAnalyzer(oracle, log.Logger)

	vault := buildSnapshotVault(cfg)

	handlers.Init(cfg, oracle, aggregator, analyzer, vault, log.Logger)

	scheduler := jobs.NewScheduler(aggregator, oracle, log.Logger)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start background jobs")
	}
	defer scheduler.Stop()

	router := setupRouter(cfg)
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// buildYieldAdapters prefers the live DeFiLlama feed when configured and
// falls back to the built-in protocol catalogs otherwise. Either way the
// catalogs back every adapter so yield data survives upstream outages.
func buildYieldAdapters(cfg *config.Config, store cache.Cache) []*defi.Adapter {
	if cfg.DeFiLlamaURL != "" {
		source := defi.NewLlamaSource(cfg.DeFiLlamaURL, log.Logger)
		return []*defi.Adapter{
			defi.NewAdapter(source, defi.BuiltinCatalog(), store, cfg.YieldCacheTTL, log.Logger),
		}
	}

	adapters := []*defi.Adapter{}
	for _, source := range defi.BuiltinSources() {
		adapters = append(adapters, defi.NewAdapter(source, nil, store, cfg.YieldCacheTTL, log.Logger))
	}
	return adapters
}

func buildSnapshotVault(cfg *config.Config) *storage.SnapshotVault {
	if cfg.SnapshotBucket == "" || cfg.EncryptionKey == "" {
		log.Info().Msg("snapshot export disabled, bucket or encryption key not configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewS3Store(ctx, cfg.SnapshotBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize the snapshot store")
	}
	sealer, err := storage.NewSealer([]byte(cfg.EncryptionKey))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize snapshot encryption")
	}
	return storage.NewSnapshotVault(store, sealer, log.Logger)
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/cryptocurrencies", handlers.GetCryptocurrencies)
		api.GET("/defi/stablecoins", handlers.GetStablecoins)

		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
		api.POST("/auth/refresh", handlers.Refresh)
		api.POST("/auth/logout", handlers.Logout)
	}

	auth := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	{
		auth.GET("/auth/me", handlers.Me)

		auth.GET("/portfolio", handlers.GetPortfolio)
		auth.POST("/portfolio/holdings", handlers.AddHolding)
		auth.PUT("/portfolio/holdings/:id", handlers.UpdateHolding)
		auth.DELETE("/portfolio/holdings/:id", handlers.DeleteHolding)
		auth.POST("/portfolio/export", handlers.ExportPortfolio)

		auth.POST("/user/preferences/data_consent", handlers.UpdateDataConsent)

		auth.GET("/defi/opportunities", handlers.GetYieldOpportunities)
		auth.GET("/defi/stablecoins/prices", handlers.GetStablecoinPrices)
	}

	premium := auth.Group("", middleware.RequirePremium())
	{
		premium.GET("/defi/recommendations", handlers.GetRecommendations)
		premium.GET("/defi/stablecoins/:symbol/stability", handlers.GetStablecoinStability)
	}

	return router
}
