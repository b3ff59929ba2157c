package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/render"
	"github.com/bobby-s-dev/weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

// CoordinateResolver turns a city name into a single best-match location.
// A miss must be reported as client.ErrLocationNotFound.
type CoordinateResolver interface {
	Resolve(ctx context.Context, city string) (*models.Coordinates, error)
}

// ForecastClient fetches raw upstream weather fields for a location.
type ForecastClient interface {
	FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.RawCurrent, error)
	FetchDaily(ctx context.Context, coords models.Coordinates, days int) (*models.RawDaily, error)
}

type Options struct {
	DefaultCity string
	DefaultDays int
	// Now is used for day/night selection when a reading has no parseable
	// local time. Defaults to time.Now.
	Now func() time.Time
}

type WeatherService struct {
	resolver     CoordinateResolver
	forecaster   ForecastClient
	logger       *zap.Logger
	defaultCity  string
	defaultDays  int
	now          func() time.Time
	mu           sync.RWMutex
	successCount int
	failureCount int
	lastRequest  time.Time
}

func NewWeatherService(cfg *config.Config, logger *zap.Logger) *WeatherService {
	clientConfig := client.ClientConfig{
		Timeout:        cfg.WeatherAPI.Timeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		RateLimit:      cfg.RateLimit.RPS,
		Burst:          cfg.RateLimit.Burst,
	}

	geocoder := client.NewGeocodingClient(cfg.WeatherAPI.GeocodingURL, clientConfig, logger)
	forecaster := client.NewOpenMeteoClient(cfg.WeatherAPI.OpenMeteoURL, clientConfig, logger)
	logger.Info("Open-Meteo clients initialized",
		zap.String("geocoding_url", cfg.WeatherAPI.GeocodingURL),
		zap.String("forecast_url", cfg.WeatherAPI.OpenMeteoURL))

	return NewWeatherServiceWith(geocoder, forecaster, Options{
		DefaultCity: cfg.Defaults.City,
		DefaultDays: cfg.Defaults.ForecastDays,
	}, logger)
}

func NewWeatherServiceWith(resolver CoordinateResolver, forecaster ForecastClient, opts Options, logger *zap.Logger) *WeatherService {
	if opts.DefaultCity == "" {
		opts.DefaultCity = "London"
	}
	if opts.DefaultDays < MinForecastDays || opts.DefaultDays > MaxForecastDays {
		opts.DefaultDays = 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &WeatherService{
		resolver:    resolver,
		forecaster:  forecaster,
		logger:      logger,
		defaultCity: opts.DefaultCity,
		defaultDays: opts.DefaultDays,
		now:         opts.Now,
	}
}

func (s *WeatherService) DefaultCity() string {
	return s.defaultCity
}

func (s *WeatherService) DefaultDays() int {
	return s.defaultDays
}

// ParseCity applies this service's default city.
func (s *WeatherService) ParseCity(raw string) (string, error) {
	return ParseCity(raw, s.defaultCity)
}

func (s *WeatherService) GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeather, error) {
	city, err := s.ParseCity(city)
	if err != nil {
		return nil, err
	}

	coords, err := s.resolve(ctx, city)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetching current weather", zap.String("city", coords.Name))

	raw, err := s.forecaster.FetchCurrent(ctx, *coords)
	if err != nil {
		s.recordFailure()
		s.logger.Error("Failed to fetch current weather",
			zap.String("city", coords.Name),
			zap.Error(err))
		return nil, newError(ErrUpstreamUnavailable,
			fmt.Sprintf("Failed to fetch weather data for %s", coords.Name), err)
	}

	weather := normalizeCurrent(*coords, *raw)
	s.recordSuccess()
	s.logger.Info("Successfully fetched weather", zap.String("city", coords.Name))
	return weather, nil
}

func (s *WeatherService) GetForecast(ctx context.Context, city string, days int) (*models.Forecast, error) {
	city, err := s.ParseCity(city)
	if err != nil {
		return nil, err
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	coords, err := s.resolve(ctx, city)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetching forecast",
		zap.String("city", coords.Name),
		zap.Int("days", days))

	raw, err := s.forecaster.FetchDaily(ctx, *coords, days)
	if err != nil {
		s.recordFailure()
		s.logger.Error("Failed to fetch forecast",
			zap.String("city", coords.Name),
			zap.Int("days", days),
			zap.Error(err))
		return nil, newError(ErrUpstreamUnavailable,
			fmt.Sprintf("Failed to fetch forecast data for %s", coords.Name), err)
	}

	forecast := normalizeForecast(*coords, *raw, days)
	if len(forecast.Days) < days {
		s.logger.Warn("Upstream returned fewer forecast days than requested",
			zap.String("city", coords.Name),
			zap.Int("requested", days),
			zap.Int("available", len(forecast.Days)))
	}

	s.recordSuccess()
	s.logger.Info("Successfully fetched forecast", zap.String("city", coords.Name))
	return forecast, nil
}

// RenderASCII produces the terminal dashboard for mode. Days is only used by
// the forecast mode.
func (s *WeatherService) RenderASCII(ctx context.Context, city string, mode Mode, days int) (string, error) {
	var out string

	switch mode {
	case ModeForecast:
		forecast, err := s.GetForecast(ctx, city, days)
		if err != nil {
			return "", err
		}
		out = render.ForecastDashboard(*forecast)
	case ModeCurrent, "":
		weather, err := s.GetCurrentWeather(ctx, city)
		if err != nil {
			return "", err
		}
		out = render.CurrentDashboard(*weather, render.IsNight(s.localHour(weather.Reading)))
	default:
		return "", invalidInput("Mode must be 'current' or 'forecast'")
	}

	if strings.TrimSpace(out) == "" {
		s.logger.Error("ASCII rendering produced no output",
			zap.String("city", city),
			zap.String("mode", string(mode)))
		return "", newError(ErrRenderingEmpty, "No ASCII output generated", nil)
	}
	return out, nil
}

// Probe resolves the default city to check that the geocoder is reachable.
func (s *WeatherService) Probe(ctx context.Context) error {
	_, err := s.resolver.Resolve(ctx, s.defaultCity)
	return err
}

func (s *WeatherService) resolve(ctx context.Context, city string) (*models.Coordinates, error) {
	coords, err := s.resolver.Resolve(ctx, city)
	if err == nil {
		return coords, nil
	}

	s.recordFailure()
	if errors.Is(err, client.ErrLocationNotFound) {
		s.logger.Warn("City not found", zap.String("city", city))
		return nil, newError(ErrCityNotFound, fmt.Sprintf("City '%s' not found", city), err)
	}

	s.logger.Error("Failed to resolve coordinates",
		zap.String("city", city),
		zap.Error(err))
	return nil, newError(ErrUpstreamUnavailable,
		fmt.Sprintf("Failed to fetch coordinates for %s", city), err)
}

// localHour prefers the reading's own timestamp, which the upstream reports
// in the location's timezone.
func (s *WeatherService) localHour(r models.CurrentReading) int {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, r.Timestamp); err == nil {
			return t.Hour()
		}
	}
	return s.now().Hour()
}

func (s *WeatherService) recordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successCount++
	s.lastRequest = time.Now()
}

func (s *WeatherService) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failureCount++
	s.lastRequest = time.Now()
}

func (s *WeatherService) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"success_count": s.successCount,
		"failure_count": s.failureCount,
		"last_request":  s.lastRequest,
	}
}
