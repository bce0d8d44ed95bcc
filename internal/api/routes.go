package api

import (
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, cfg *config.Config) {
	// Pages
	app.Get("/", middleware.ValidateQueryParams(func() interface{} { return &HomeQuery{} }), handlers.Home)
	app.Get("/post/:slug", handlers.Post)

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Post endpoints
	posts := api.Group("/posts")
	{
		posts.Get("", middleware.ValidateQueryParams(func() interface{} { return &PostsQuery{} }), handlers.ListPosts)
		posts.Get("/:slug", middleware.ValidateSlugParam(), handlers.GetPost)
	}

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/revalidate", handlers.Revalidate)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
