package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
		CORSOrigins  string
	}

	WeatherAPI struct {
		GeocodingURL string
		OpenMeteoURL string
		Timeout      time.Duration
	}

	Defaults struct {
		City         string
		ForecastDays int
	}

	RateLimit struct {
		RPS   float64
		Burst int
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	Probe struct {
		Schedule string
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", getEnv("PORT", "8080"))
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.CORSOrigins = getEnv("CORS_ORIGINS", "*")

	// Upstream configuration
	cfg.WeatherAPI.GeocodingURL = getEnv("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1")
	cfg.WeatherAPI.OpenMeteoURL = getEnv("OPENMETEO_URL", "https://api.open-meteo.com/v1")
	cfg.WeatherAPI.Timeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))

	cfg.Defaults.City = strings.TrimSpace(getEnv("DEFAULT_CITY", "London"))
	cfg.Defaults.ForecastDays = parseInt(getEnv("DEFAULT_FORECAST_DAYS", "5"))

	// Outbound rate limiting
	cfg.RateLimit.RPS = parseFloat(getEnv("RATE_LIMIT_RPS", "10"))
	cfg.RateLimit.Burst = parseInt(getEnv("RATE_LIMIT_BURST", "5"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retries are off unless asked for
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "0"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	cfg.Probe.Schedule = getEnv("PROBE_SCHEDULE", "@every 5m")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
