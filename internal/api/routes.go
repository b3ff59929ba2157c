package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

var availableEndpoints = []string{"/api", "/weather", "/forecast", "/ascii"}

func SetupRoutes(app *fiber.App, handler *Handler, corsOrigins string, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	app.Get("/api", handler.GetInfo)
	app.Get("/weather", handler.GetCurrentWeather)
	app.Get("/forecast", handler.GetForecast)
	app.Get("/ascii", handler.GetASCII)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		log.Debug("Endpoint not found", zap.String("path", c.Path()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":               "Endpoint not found",
			"message":             "Please check the API documentation at the /api endpoint",
			"available_endpoints": availableEndpoints,
		})
	})
}

// ErrorHandler is the fiber fallback for errors that escape the handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
