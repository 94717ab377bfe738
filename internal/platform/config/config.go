package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	DBMaxConns         int32
	JWTSecret          string
	RateLimit          string
	CORSAllowedOrigins []string

	Posting    PostingConfig
	Resilience ResilienceConfig
	Audit      AuditConfig

	ConfigCacheTTL time.Duration

	OTelEndpoint    string
	OTelServiceName string
}

// PostingConfig holds the numeric limits of the posting pipeline.
type PostingConfig struct {
	FutureGraceDays         int
	MaxEventAmount          decimal.Decimal
	MaxRoundingRemainder    decimal.Decimal
	ReconciliationTolerance decimal.Decimal
}

// ResilienceConfig bounds retries around storage calls.
type ResilienceConfig struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	CallTimeout     time.Duration
}

// AuditConfig controls batching of non-critical audit entries.
type AuditConfig struct {
	FlushInterval time.Duration
	BatchSize     int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("FUTURE_GRACE_DAYS", 0)
	viper.SetDefault("MAX_EVENT_AMOUNT", "1000000000000")
	viper.SetDefault("MAX_ROUNDING_REMAINDER", "0.05")
	viper.SetDefault("RECONCILIATION_TOLERANCE", "0.01")
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 4)
	viper.SetDefault("RETRY_INITIAL_INTERVAL", "100ms")
	viper.SetDefault("RETRY_MAX_INTERVAL", "2s")
	viper.SetDefault("RETRY_MAX_ELAPSED", "10s")
	viper.SetDefault("CALL_TIMEOUT", "3s")
	viper.SetDefault("CONFIG_CACHE_TTL", "1m")
	viper.SetDefault("AUDIT_FLUSH_INTERVAL", "2s")
	viper.SetDefault("AUDIT_BATCH_SIZE", 50)
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_SERVICE_NAME", "mda-posting-engine")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.Posting = PostingConfig{
		FutureGraceDays:         viper.GetInt("FUTURE_GRACE_DAYS"),
		MaxEventAmount:          decimalOrDefault("MAX_EVENT_AMOUNT", "1000000000000"),
		MaxRoundingRemainder:    decimalOrDefault("MAX_ROUNDING_REMAINDER", "0.05"),
		ReconciliationTolerance: decimalOrDefault("RECONCILIATION_TOLERANCE", "0.01"),
	}
	if cfg.Posting.FutureGraceDays < 0 {
		log.Printf("Warning: FUTURE_GRACE_DAYS is negative (%d). Defaulting to 0.\n", cfg.Posting.FutureGraceDays)
		cfg.Posting.FutureGraceDays = 0
	}

	maxAttempts := viper.GetInt("RETRY_MAX_ATTEMPTS")
	if maxAttempts < 1 {
		log.Printf("Warning: RETRY_MAX_ATTEMPTS must be at least 1 (got %d). Defaulting to 1.\n", maxAttempts)
		maxAttempts = 1
	}
	cfg.Resilience = ResilienceConfig{
		MaxAttempts:     uint(maxAttempts),
		InitialInterval: durationOrDefault("RETRY_INITIAL_INTERVAL", 100*time.Millisecond),
		MaxInterval:     durationOrDefault("RETRY_MAX_INTERVAL", 2*time.Second),
		MaxElapsed:      durationOrDefault("RETRY_MAX_ELAPSED", 10*time.Second),
		CallTimeout:     durationOrDefault("CALL_TIMEOUT", 3*time.Second),
	}

	cfg.Audit = AuditConfig{
		FlushInterval: durationOrDefault("AUDIT_FLUSH_INTERVAL", 2*time.Second),
		BatchSize:     viper.GetInt("AUDIT_BATCH_SIZE"),
	}
	if cfg.Audit.BatchSize < 1 {
		cfg.Audit.BatchSize = 50
	}

	cfg.ConfigCacheTTL = durationOrDefault("CONFIG_CACHE_TTL", time.Minute)
	cfg.OTelEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTelServiceName = viper.GetString("OTEL_SERVICE_NAME")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func decimalOrDefault(key, fallback string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
