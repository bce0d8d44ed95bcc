package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/spacetraveling/internal/api"
	"github.com/bilgisen/spacetraveling/internal/cache"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/dateformat"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/middleware"
	"github.com/bilgisen/spacetraveling/internal/paginator"
	"github.com/bilgisen/spacetraveling/internal/post"
	"github.com/bilgisen/spacetraveling/internal/richtext"
	"github.com/bilgisen/spacetraveling/internal/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	// Page cache
	var store cache.Store
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis client")
		}
		store = redisClient
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory page cache")
		store = cache.NewMemoryStore()
	}
	defer func() {
		log.Info().Msg("Closing page cache...")
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing page cache")
		}
	}()

	source, err := content.New(cfg.PrismicAPIURL, content.Options{
		Timeout:    cfg.HTTPTimeout,
		RetryCount: cfg.ContentRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize content client")
	}

	dates, err := dateformat.New(cfg.Locale, cfg.Location())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize date formatter")
	}

	renderer, err := views.New(cfg.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	handlers := api.NewHandlers(cfg, source, store,
		post.NewProjector(richtext.NewRenderer(), dates, cfg.DatePattern),
		renderer,
		paginator.FormatDates(dates, cfg.DatePattern),
	)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.Env == "production",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api.SetupRoutes(app, handlers, cfg)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
