package cmd_test

import (
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.CounterBackendPostgres, cfg.CounterBackend)
	assert.Equal(t, carrier.Sandbox, cfg.CarrierMode)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.BookingPacing)
	assert.Equal(t, 40, cfg.AutoRowLimit)
	assert.Equal(t, uint(3), cfg.LabelTries)
	assert.Equal(t, "Sydney", cfg.HomeLocation)
	assert.Empty(t, cfg.NotifyRecipients)
}

func TestLoadConfig_Values(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(map[string]string{
		"COUNTER_BACKEND":         "Redis",
		"REDIS_DB":                "2",
		"CARRIER_MODE":            "live",
		"SAMEDAY_LIVE_URL":        "https://couriers.example.com",
		"CALL_TIMEOUT":            "5s",
		"BOOKING_PACING":          "1s",
		"AUTO_ROW_LIMIT":          "0",
		"STORE_NOTIFY_RECIPIENTS": "flowers-au:ops@flowers.example.com",
		"SAMEDAY_CRON":            "*/20 6-14 * * *",
	}))

	require.NoError(t, err)
	assert.Equal(t, cmd.CounterBackendRedis, cfg.CounterBackend)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, carrier.Live, cfg.CarrierMode)
	assert.Equal(t, "https://couriers.example.com", cfg.SameDayCarrier.LiveURL)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, time.Second, cfg.BookingPacing)
	assert.Equal(t, 0, cfg.AutoRowLimit)
	assert.Equal(t, notify.Recipients{"flowers-au": "ops@flowers.example.com"}, cfg.NotifyRecipients)
	assert.Equal(t, "*/20 6-14 * * *", cfg.SameDayCron)
}

func TestLoadConfig_ReportsEveryProblem(t *testing.T) {
	_, err := cmd.LoadConfig(env(map[string]string{
		"COUNTER_BACKEND": "etcd",
		"CARRIER_MODE":    "staging",
		"CALL_TIMEOUT":    "soon",
		"AUTO_ROW_LIMIT":  "-5",
	}))

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "COUNTER_BACKEND")
	assert.Contains(t, err.Error(), "CALL_TIMEOUT")
}
