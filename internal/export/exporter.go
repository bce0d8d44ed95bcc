// Package export renders every page of the blog to static files.
package export

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/paginator"
	"github.com/bilgisen/spacetraveling/internal/post"
	"github.com/bilgisen/spacetraveling/internal/views"
)

// Source is the content repository the export reads from.
type Source interface {
	QueryByType(ctx context.Context, docType string, opts content.QueryOptions) (*models.PostPage, error)
	FetchPage(ctx context.Context, cursor string) (*models.PostPage, error)
	QueryByUID(ctx context.Context, docType, uid string) (*models.PostDetail, error)
}

// PageWriter stores a rendered page under a slash separated path.
type PageWriter interface {
	WritePage(ctx context.Context, relPath string, data []byte) error
}

// Options tunes an export run.
type Options struct {
	DocType  string
	PageSize int
	Workers  int
}

// Result summarizes an export run.
type Result struct {
	Posts    int
	Written  int
	Skipped  []string
	Duration time.Duration
}

// Exporter writes the home page and one page per post.
type Exporter struct {
	source    Source
	projector *post.Projector
	views     *views.Renderer
	format    paginator.SummaryFormatter
	writer    PageWriter
	opts      Options
}

// New creates an exporter.
func New(source Source, projector *post.Projector, renderer *views.Renderer, format paginator.SummaryFormatter, writer PageWriter, opts Options) *Exporter {
	if opts.DocType == "" {
		opts.DocType = "posts"
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Exporter{
		source:    source,
		projector: projector,
		views:     renderer,
		format:    format,
		writer:    writer,
		opts:      opts,
	}
}

// Run walks the whole listing and writes every page. Listing failures abort
// the run; a post that cannot be fetched, projected or rendered is skipped.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	log := logger.Component("export")
	start := time.Now()

	posts, err := e.listAll(ctx)
	if err != nil {
		return nil, err
	}

	home, err := e.views.Home(views.HomePage{Posts: posts})
	if err != nil {
		return nil, err
	}
	if err := e.writer.WritePage(ctx, "index.html", home); err != nil {
		return nil, fmt.Errorf("write home page: %w", err)
	}

	result := &Result{Posts: len(posts), Written: 1}

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.opts.Workers)

	for _, summary := range posts {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		uid := summary.UID
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()

			err := e.exportPost(ctx, uid)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("uid", uid).Msg("Skipping post")
				result.Skipped = append(result.Skipped, uid)
				return
			}
			result.Written++
		}()
	}
	wg.Wait()

	result.Duration = time.Since(start)
	log.Info().
		Int("posts", result.Posts).
		Int("written", result.Written).
		Int("skipped", len(result.Skipped)).
		Dur("duration", result.Duration).
		Msg("Export finished")

	return result, nil
}

func (e *Exporter) listAll(ctx context.Context) ([]models.PostSummary, error) {
	log := logger.Component("export")

	first, err := e.source.QueryByType(ctx, e.opts.DocType, content.QueryOptions{PageSize: e.opts.PageSize})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	p := paginator.New(e.source, e.format)
	unsubscribe := p.Subscribe(func(s paginator.State) {
		log.Debug().Int("posts", len(s.Posts)).Bool("has_more", s.HasMore).Msg("Loaded listing page")
	})
	defer unsubscribe()

	p.Initialize(*first)
	for p.HasMore() {
		if err := p.LoadMore(ctx); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
	}
	return p.Posts(), nil
}

func (e *Exporter) exportPost(ctx context.Context, uid string) error {
	detail, err := e.source.QueryByUID(ctx, e.opts.DocType, uid)
	if err != nil {
		return err
	}
	vm, err := e.projector.Project(*detail)
	if err != nil {
		return err
	}
	html, err := e.views.Post(vm)
	if err != nil {
		return err
	}
	return e.writer.WritePage(ctx, PostPath(uid), html)
}

// PostPath is the export path of a post page.
func PostPath(uid string) string {
	return path.Join("post", uid, "index.html")
}
