package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/post"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: posts/x", content.ErrNotFound), fiber.StatusNotFound},
		{"invalid uid", content.ErrInvalidUID, fiber.StatusNotFound},
		{"invalid cursor", fmt.Errorf("%w: host", content.ErrInvalidCursor), fiber.StatusBadRequest},
		{"fetch error", &content.FetchError{Op: "api", StatusCode: 503, Err: errors.New("down")}, fiber.StatusBadGateway},
		{"malformed", &content.FetchError{Op: "api", Err: content.ErrMalformedResponse}, fiber.StatusBadGateway},
		{"precondition", fmt.Errorf("%w: no date", post.ErrPrecondition), fiber.StatusInternalServerError},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/api/v1/posts", func(c *fiber.Ctx) error { return content.ErrInvalidCursor })
	app.Get("/post/:slug", func(c *fiber.Ctx) error {
		return &content.FetchError{Op: "query-by-uid", StatusCode: 500, Err: errors.New("down")}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bad Request", body["error"])

	resp, err = app.Test(httptest.NewRequest("GET", "/post/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Bad Gateway", string(raw))
}

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Post("/admin", AdminOnly("secret"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing key", "", fiber.StatusUnauthorized},
		{"wrong key", "nope", fiber.StatusUnauthorized},
		{"valid key", "secret", fiber.StatusNoContent},
		{"bearer key", "Bearer secret", fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminOnlyWithoutConfiguredKey(t *testing.T) {
	app := fiber.New()
	app.Post("/admin", AdminOnly(""), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("X-API-Key", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

type pageQuery struct {
	Pages int `query:"pages" validate:"omitempty,min=1,max=50"`
}

func TestValidateQueryParams(t *testing.T) {
	app := fiber.New()
	app.Get("/", ValidateQueryParams(func() interface{} { return &pageQuery{} }), func(c *fiber.Ctx) error {
		q := c.Locals(QueryParamsKey).(*pageQuery)
		return c.SendString(fmt.Sprint(q.Pages))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?pages=3", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "3", string(raw))

	// a fresh value per request: no leftovers from the previous one
	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "0", string(raw))

	resp, err = app.Test(httptest.NewRequest("GET", "/?pages=99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/?pages=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestValidateSlugParam(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/post/:slug", ValidateSlugParam(), func(c *fiber.Ctx) error {
		return c.SendString(c.Params("slug"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/post/como-utilizar-hooks", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/post/Bad%20Slug", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNewLoggerPassesErrorsThrough(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLogger())
	app.Get("/api/v1/missing", func(c *fiber.Ctx) error { return content.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
