package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CacheHeader reports whether a page was served from the page cache.
const CacheHeader = "X-Cache"

// QueryParamsKey is the Locals key of validated query parameters.
const QueryParamsKey = "queryParams"

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that also knows the "slug" tag.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return utils.ValidSlug(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate validates a struct
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateQueryParams parses the query string into a fresh value from
// newParams and validates it. The value is stored under QueryParamsKey.
func ValidateQueryParams(newParams func() interface{}) fiber.Handler {
	v := NewValidator()

	return func(c *fiber.Ctx) error {
		params := newParams()
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := v.Validate(params); err != nil {
			fields := make(map[string]string)
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fields[fe.Field()] = fe.Tag()
				}
			}

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(QueryParamsKey, params)
		return c.Next()
	}
}

// ValidateSlugParam rejects requests whose :slug parameter is not a slug.
func ValidateSlugParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !utils.ValidSlug(c.Params("slug")) {
			return content.ErrInvalidUID
		}
		return c.Next()
	}
}

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	var fiberErr *fiber.Error
	var fetchErr *content.FetchError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrInvalidUID):
		return fiber.StatusNotFound
	case errors.Is(err, content.ErrInvalidCursor):
		return fiber.StatusBadRequest
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway
	default:
		// post.ErrPrecondition and rendering failures are server faults.
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the application's fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)

	event := logger.Get().Warn()
	if code >= fiber.StatusInternalServerError {
		event = logger.Get().Error()
	}
	event.
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{
			"error": http.StatusText(code),
		})
	}
	return c.Status(code).SendString(http.StatusText(code))
}
