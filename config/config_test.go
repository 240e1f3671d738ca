package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "LOG_LEVEL", "REDIS_ADDR", "CACHE_TTL", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW", "PLANS_FILE", "MAX_STORED_CALCULATIONS", "MEMORY_CACHE_ENTRIES"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10000, cfg.MaxCalculations)
	assert.Equal(t, 10000, cfg.CacheEntries)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestFromEnv_NonPositiveRateLimitUsesDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "-5s")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)

	t.Setenv("RATE_LIMIT_CAPACITY", "-3")
	assert.Equal(t, 30, FromEnv().RateLimitCapacity)
}

func TestLogger_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, Config{LogLevel: "debug"}.Logger().GetLevel())
	assert.Equal(t, logrus.InfoLevel, Config{LogLevel: "nonsense"}.Logger().GetLevel())
}
