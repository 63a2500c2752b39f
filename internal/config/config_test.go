package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, uint(3), cfg.EventRetryAttempts)
	assert.Equal(t, 15*time.Minute, cfg.OverdueScanInterval)
	assert.Equal(t, "taskhub:domain-events", cfg.RedisStream)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("EVENT_RETRY_ATTEMPTS", "5")
	t.Setenv("OVERDUE_SCAN_INTERVAL", "90s")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,10.0.0.2 ")

	cfg := LoadConfig()

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, uint(5), cfg.EventRetryAttempts)
	assert.Equal(t, 90*time.Second, cfg.OverdueScanInterval)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("OVERDUE_SCAN_INTERVAL", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("OVERDUE_SCAN_INTERVAL", time.Minute))
}
