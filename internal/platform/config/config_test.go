package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/mda")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/mda", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.05", cfg.Posting.MaxRoundingRemainder.String())
	assert.Equal(t, "0.01", cfg.Posting.ReconciliationTolerance.String())
	assert.Equal(t, uint(4), cfg.Resilience.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Resilience.CallTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigOverridesAndFallbacks(t *testing.T) {
	viper.Reset()
	t.Setenv("FUTURE_GRACE_DAYS", "5")
	t.Setenv("RETRY_INITIAL_INTERVAL", "not-a-duration")
	t.Setenv("MAX_ROUNDING_REMAINDER", "-1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Posting.FutureGraceDays)
	assert.Equal(t, 100*time.Millisecond, cfg.Resilience.InitialInterval)
	assert.Equal(t, "0.05", cfg.Posting.MaxRoundingRemainder.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
