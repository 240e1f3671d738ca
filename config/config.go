package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr          string
	LogLevel          string
	RedisAddr         string // empty selects the in-memory cache
	CacheTTL          time.Duration
	CacheEntries      int // in-memory cache only
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	PlansFile         string
	OpenAIKey         string
	OpenAIURL         string
	MaxCalculations   int
}

// Load reads configuration from the environment, after an optional .env file.
func Load(logger logrus.FieldLogger) Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found, using environment only")
	}
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() Config {
	return Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CacheTTL:          getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheEntries:      getEnvInt("MEMORY_CACHE_ENTRIES", 10000),
		RateLimitCapacity: positiveInt(getEnvInt("RATE_LIMIT_CAPACITY", 30), 30),
		RateLimitWindow:   positiveDuration(getEnvDuration("RATE_LIMIT_WINDOW", time.Minute), time.Minute),
		PlansFile:         getEnv("PLANS_FILE", ""),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIURL:         getEnv("OPENAI_API_URL", ""),
		MaxCalculations:   getEnvInt("MAX_STORED_CALCULATIONS", 10000),
	}
}

// Logger builds the process logger at the configured level.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func positiveInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func positiveDuration(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
