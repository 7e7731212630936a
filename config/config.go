package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global PostgreSQL database connection.
var DB *gorm.DB

// Rdb is the global Redis client.
var Rdb *redis.Client

// Config holds everything read from the environment at boot. Scoring and
// tolerance knobs for the yield engine live in the defi package; this covers
// transport endpoints, credentials and cache policy.
type Config struct {
	Port      string
	JWTSecret string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Upstreams
	CoinGeckoURL string
	DeFiLlamaURL string // empty: yield data served from the built-in catalogs

	// Cache policy
	PriceCacheTTL time.Duration
	YieldCacheTTL time.Duration

	// Freemium
	FreeTierHoldingLimit int

	// Snapshot export
	SnapshotBucket string
	EncryptionKey  string // 32 bytes for AES-256-GCM; export disabled when empty
}

func Load() *Config {
	return &Config{
		Port:      envStr("PORT", "8080"),
		JWTSecret: envStr("JWT_SECRET", ""),

		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envStr("DB_PORT", "5432"),
		DBUser:     envStr("DB_USER", ""),
		DBPassword: envStr("DB_PASSWORD", ""),
		DBName:     envStr("DB_NAME", "cryptotron"),

		RedisAddr:     envStr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: envStr("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),

		CoinGeckoURL: envStr("COINGECKO_API_URL", "https://api.coingecko.com/api/v3"),
		DeFiLlamaURL: envStr("DEFILLAMA_API_URL", ""),

		PriceCacheTTL: envDuration("PRICE_CACHE_TTL", 5*time.Minute),
		YieldCacheTTL: envDuration("YIELD_CACHE_TTL", 15*time.Minute),

		FreeTierHoldingLimit: envInt("FREE_TIER_HOLDING_LIMIT", 5),

		SnapshotBucket: envStr("SNAPSHOT_BUCKET", ""),
		EncryptionKey:  envStr("SNAPSHOT_ENCRYPTION_KEY", ""),
	}
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.EncryptionKey != "" && len(c.EncryptionKey) != 32 {
		return fmt.Errorf("SNAPSHOT_ENCRYPTION_KEY must be exactly 32 bytes, got %d", len(c.EncryptionKey))
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// InitDB opens the global PostgreSQL connection.
func InitDB(cfg *Config) {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
}

// InitRedis initializes the global Redis connection.
func InitRedis(cfg *Config) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
