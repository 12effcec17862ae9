package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_ops/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := shared.Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())

	rt := cfg.RateTable()
	assert.Equal(t, 15000.0, rt.Bonuses["senior"])
	assert.Equal(t, 0.0, rt.Bonuses["junior"])
	assert.InDelta(t, 0.20, rt.PeakSurcharge, 1e-9)
	assert.InDelta(t, 0.10, rt.LoyaltyDiscount, 1e-9)
	assert.Empty(t, cfg.Season().PeakMonths)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PEAK_MONTHS", "7,8,13")
	t.Setenv("BONUS_MANAGER", "40000")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := shared.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []time.Month{time.July, time.August}, cfg.Season().PeakMonths)
	assert.Equal(t, 40000.0, cfg.RateTable().Bonuses["manager"])
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_BadValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := shared.Load()
	assert.Error(t, err)
}
