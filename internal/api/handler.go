package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/scheduler"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const apiVersion = "2.0"

// ProbeStatus exposes the latest upstream probe result.
type ProbeStatus interface {
	Status() scheduler.Status
}

type Handler struct {
	service *services.WeatherService
	probe   ProbeStatus
	logger  *zap.Logger
}

// NewHandler builds the HTTP handlers. probe may be nil when no upstream
// probe is running.
func NewHandler(service *services.WeatherService, probe ProbeStatus, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		probe:   probe,
		logger:  logger,
	}
}

// GetInfo handles GET /api
func (h *Handler) GetInfo(c *fiber.Ctx) error {
	info := fiber.Map{
		"status":  "healthy",
		"version": apiVersion,
		"message": "Weather API is running",
		"endpoints": fiber.Map{
			"GET /api":      "API information",
			"GET /weather":  "Get current weather for a city",
			"GET /forecast": "Get weather forecast for a city",
			"GET /ascii":    "Get ASCII art weather display",
		},
		"parameters": fiber.Map{
			"city": "City name, 2-100 characters (optional, default: " + h.service.DefaultCity() + ")",
			"days": "Number of forecast days 1-7 (optional, default: " + strconv.Itoa(h.service.DefaultDays()) + ")",
			"mode": "ASCII display mode: 'current' or 'forecast' (optional, default: 'current')",
		},
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now(),
		"stats":     h.service.GetStats(),
	}
	if h.probe != nil {
		info["upstream"] = h.probe.Status()
	}

	return c.JSON(info)
}

// GetCurrentWeather handles GET /weather
func (h *Handler) GetCurrentWeather(c *fiber.Ctx) error {
	city, err := h.service.ParseCity(c.Query("city"))
	if err != nil {
		return h.respondError(c, err)
	}

	weather, err := h.service.GetCurrentWeather(c.UserContext(), city)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(weather)
}

// GetForecast handles GET /forecast
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	city, err := h.service.ParseCity(c.Query("city"))
	if err != nil {
		return h.respondError(c, err)
	}

	days, err := services.ParseDays(c.Query("days", strconv.Itoa(h.service.DefaultDays())))
	if err != nil {
		return h.respondError(c, err)
	}

	forecast, err := h.service.GetForecast(c.UserContext(), city, days)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(forecast)
}

// GetASCII handles GET /ascii
func (h *Handler) GetASCII(c *fiber.Ctx) error {
	city, err := h.service.ParseCity(c.Query("city"))
	if err != nil {
		return h.respondError(c, err)
	}

	mode, err := services.ParseMode(c.Query("mode"))
	if err != nil {
		return h.respondError(c, err)
	}

	days := h.service.DefaultDays()
	if mode == services.ModeForecast {
		days, err = services.ParseDays(c.Query("days", strconv.Itoa(days)))
		if err != nil {
			return h.respondError(c, err)
		}
	}

	h.logger.Info("Generating ASCII display",
		zap.String("city", city),
		zap.String("mode", string(mode)))

	output, err := h.service.RenderASCII(c.UserContext(), city, mode, days)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"city":  city,
		"mode":  mode,
		"ascii": output,
	})
}

// respondError maps service errors to a status code and a flat error body.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, message = fiber.StatusBadRequest, "Invalid input: "+err.Error()
		h.logger.Warn("Validation error", zap.String("path", c.Path()), zap.Error(err))
	case errors.Is(err, services.ErrCityNotFound):
		status, message = fiber.StatusNotFound, err.Error()
		h.logger.Warn("City not found", zap.String("path", c.Path()), zap.Error(err))
	case errors.Is(err, services.ErrUpstreamUnavailable):
		status, message = fiber.StatusServiceUnavailable, err.Error()
		h.logger.Error("Upstream unavailable", zap.String("path", c.Path()), zap.Error(err))
	default:
		h.logger.Error("Unexpected error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

var startTime = time.Now()
