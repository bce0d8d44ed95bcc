package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/dateformat"
	"github.com/bilgisen/spacetraveling/internal/export"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/paginator"
	"github.com/bilgisen/spacetraveling/internal/post"
	"github.com/bilgisen/spacetraveling/internal/publish"
	"github.com/bilgisen/spacetraveling/internal/richtext"
	"github.com/bilgisen/spacetraveling/internal/storage"
	"github.com/bilgisen/spacetraveling/internal/views"
)

func main() {
	cfg := config.Load()

	out := flag.String("out", cfg.ExportPath, "directory the pages are written to")
	workers := flag.Int("workers", 4, "posts rendered concurrently")
	upload := flag.Bool("publish", cfg.R2Enabled(), "upload the export to R2")
	flag.Parse()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: true,
	}); err != nil {
		panic(err)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	store, err := storage.NewStorage(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	exporter := export.New(source,
		post.NewProjector(richtext.NewRenderer(), dates, cfg.DatePattern),
		renderer,
		paginator.FormatDates(dates, cfg.DatePattern),
		store,
		export.Options{DocType: cfg.PostsType, PageSize: cfg.PageSize, Workers: *workers},
	)

	result, err := exporter.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}
	log.Info().Str("path", store.BasePath()).Int("pages", result.Written).Strs("skipped", result.Skipped).Msg("Export written")

	if !*upload {
		return
	}
	if !cfg.R2Enabled() {
		log.Fatal().Msg("R2 credentials are not configured")
	}

	publisher, err := publish.NewR2Publisher(ctx, publish.R2Config{
		Endpoint:  cfg.R2BaseEndpoint(),
		AccessKey: cfg.R2AccessKey,
		SecretKey: cfg.R2SecretKey,
		Bucket:    cfg.R2Bucket,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 publisher")
	}

	if _, err := publisher.Publish(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("Publish failed")
	}
}
