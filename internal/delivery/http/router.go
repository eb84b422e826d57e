package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// Raw collection, same shape as the PostGIS export
	app.Get("/geojson", handler.GetGeoJSON)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Simulated clock and derived state
		api.Get("/state", handler.GetState)
		api.Put("/time", handler.SetTime)
		api.Get("/display", handler.GetDisplay)

		// Map layers
		api.Get("/features", handler.GetFeatures)
		api.Get("/features/:id", handler.GetFeature)
		api.Get("/layers", handler.GetLayers)
		api.Put("/layers/:name", handler.SetLayer)
	}
}

// ErrorHandler renders errors as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
