package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Page     *PageHandler
	Analyze  *AnalyzeHandler
	Visitors *VisitorHandler
	Extract  *ExtractHandler
}

// RegisterRoutes mounts the browser page on / and the JSON API on /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Page.HandleIndex)
	app.Post("/", h.Page.HandleSubmit)
	app.Post("/extract", h.Page.HandleExtract)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", h.Analyze.HandleAnalyze)
	api.Get("/visitors", h.Visitors.HandleVisitors)
	api.Post("/extract", h.Extract.HandleExtract)
}
