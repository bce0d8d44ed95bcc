package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/spacetraveling/internal/cache"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/middleware"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/paginator"
	"github.com/bilgisen/spacetraveling/internal/post"
	"github.com/bilgisen/spacetraveling/internal/utils"
	"github.com/bilgisen/spacetraveling/internal/views"
	"github.com/gofiber/fiber/v2"
)

// ContentSource is the content repository the handlers read from.
type ContentSource interface {
	QueryByType(ctx context.Context, docType string, opts content.QueryOptions) (*models.PostPage, error)
	FetchPage(ctx context.Context, cursor string) (*models.PostPage, error)
	QueryByUID(ctx context.Context, docType, uid string) (*models.PostDetail, error)
}

// HomeQuery are the query parameters of the home page.
type HomeQuery struct {
	Pages int `query:"pages" validate:"omitempty,min=1,max=50"`
}

// PostsQuery are the query parameters of the post listing endpoint.
type PostsQuery struct {
	Cursor string `query:"cursor" validate:"omitempty,max=2048"`
}

type Handlers struct {
	config    *config.Config
	source    ContentSource
	cache     cache.Store
	projector *post.Projector
	views     *views.Renderer
	format    paginator.SummaryFormatter
	started   time.Time
}

func NewHandlers(cfg *config.Config, source ContentSource, store cache.Store, projector *post.Projector, renderer *views.Renderer, format paginator.SummaryFormatter) *Handlers {
	return &Handlers{
		config:    cfg,
		source:    source,
		cache:     store,
		projector: projector,
		views:     renderer,
		format:    format,
		started:   time.Now(),
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Home handles GET /. ?pages=N renders the first N listing pages, the
// server side equivalent of pressing "load more" N-1 times.
func (h *Handlers) Home(c *fiber.Ctx) error {
	pages := 1
	if q, ok := c.Locals(middleware.QueryParamsKey).(*HomeQuery); ok && q.Pages > 0 {
		pages = q.Pages
	}
	if pages > h.config.MaxPages {
		pages = h.config.MaxPages
	}

	ctx := c.UserContext()
	key := fmt.Sprintf("page:home:%d", pages)
	if h.serveCached(c, key, fiber.MIMETextHTMLCharsetUTF8) {
		return nil
	}

	first, err := h.source.QueryByType(ctx, h.config.PostsType, content.QueryOptions{PageSize: h.config.PageSize})
	if err != nil {
		return err
	}

	p := paginator.New(h.source, h.format)
	p.Initialize(*first)

	loaded, complete := 1, true
	for loaded < pages && p.HasMore() {
		if err := p.LoadMore(ctx); err != nil {
			logger.Get().Warn().Err(err).Int("loaded", loaded).Int("requested", pages).Msg("Rendering partial post list")
			complete = false
			break
		}
		loaded++
	}

	data := views.HomePage{Posts: p.Posts()}
	if p.HasMore() && loaded < h.config.MaxPages {
		data.LoadMoreURL = fmt.Sprintf("/?pages=%d", loaded+1)
	}

	body, err := h.views.Home(data)
	if err != nil {
		return err
	}
	if complete {
		h.store(ctx, key, body)
	}
	return h.send(c, body, fiber.MIMETextHTMLCharsetUTF8, "MISS")
}

// Post handles GET /post/:slug
func (h *Handlers) Post(c *fiber.Ctx) error {
	slug := c.Params("slug")
	ctx := c.UserContext()

	key := "page:post:" + utils.Hash(slug)
	if h.serveCached(c, key, fiber.MIMETextHTMLCharsetUTF8) {
		return nil
	}

	vm, err := h.project(ctx, slug)
	if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrInvalidUID) {
		body, renderErr := h.views.NotFound()
		if renderErr != nil {
			return renderErr
		}
		c.Status(fiber.StatusNotFound)
		return h.send(c, body, fiber.MIMETextHTMLCharsetUTF8, "MISS")
	}
	if err != nil {
		return err
	}

	body, err := h.views.Post(vm)
	if err != nil {
		return err
	}
	h.store(ctx, key, body)
	return h.send(c, body, fiber.MIMETextHTMLCharsetUTF8, "MISS")
}

// ListPosts handles GET /api/v1/posts. Without a cursor it returns the first
// page; with one, the page the cursor points at.
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	var cursor string
	if q, ok := c.Locals(middleware.QueryParamsKey).(*PostsQuery); ok {
		cursor = q.Cursor
	}
	ctx := c.UserContext()

	key := "api:posts:" + utils.Hash(cursor)
	if h.serveCached(c, key, fiber.MIMEApplicationJSONCharsetUTF8) {
		return nil
	}

	var page *models.PostPage
	var err error
	if cursor == "" {
		page, err = h.source.QueryByType(ctx, h.config.PostsType, content.QueryOptions{PageSize: h.config.PageSize})
	} else {
		page, err = h.source.FetchPage(ctx, cursor)
	}
	if err != nil {
		return err
	}

	body, err := json.Marshal(models.NewPageView(paginator.FormatPage(*page, h.format)))
	if err != nil {
		return err
	}
	h.store(ctx, key, body)
	return h.send(c, body, fiber.MIMEApplicationJSONCharsetUTF8, "MISS")
}

// GetPost handles GET /api/v1/posts/:slug
func (h *Handlers) GetPost(c *fiber.Ctx) error {
	vm, err := h.project(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(vm)
}

// Revalidate handles POST /api/v1/admin/revalidate
func (h *Handlers) Revalidate(c *fiber.Ctx) error {
	if err := h.cache.Purge(c.UserContext()); err != nil {
		return fmt.Errorf("purge page cache: %w", err)
	}

	logger.Get().Info().Str("ip", c.IP()).Msg("Page cache purged")
	return c.JSON(fiber.Map{
		"status":  "purged",
		"message": "Pages will be rendered again on the next request",
	})
}

func (h *Handlers) project(ctx context.Context, slug string) (*models.PostDetailViewModel, error) {
	detail, err := h.source.QueryByUID(ctx, h.config.PostsType, slug)
	if err != nil {
		return nil, err
	}
	return h.projector.Project(*detail)
}

func (h *Handlers) serveCached(c *fiber.Ctx, key, contentType string) bool {
	body, ok, err := h.cache.Get(c.UserContext(), key)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Page cache read failed")
		return false
	}
	if !ok {
		return false
	}
	return h.send(c, body, contentType, "HIT") == nil
}

func (h *Handlers) store(ctx context.Context, key string, body []byte) {
	if h.config.CacheTTL <= 0 {
		return
	}
	if err := h.cache.Set(ctx, key, body, h.config.CacheTTL); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Page cache write failed")
	}
}

func (h *Handlers) send(c *fiber.Ctx, body []byte, contentType, cacheStatus string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(middleware.CacheHeader, cacheStatus)
	return c.Send(body)
}
