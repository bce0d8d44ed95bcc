package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env" validate:"oneof=development production test"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Page cache. An empty RedisURL selects the in-memory store.
	RedisURL    string        `json:"redis_url" validate:"omitempty,url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl" validate:"gte=0"`

	// Content repository
	PrismicAPIURL  string `json:"prismic_api_url" validate:"required,url"`
	PostsType      string `json:"posts_type" validate:"required"`
	PageSize       int    `json:"page_size" validate:"min=1,max=100"`
	MaxPages       int    `json:"max_pages" validate:"min=1,max=50"`
	ContentRetries int    `json:"content_retries" validate:"min=0,max=10"`

	// Presentation
	Locale      string `json:"locale" validate:"oneof=pt-BR en-US"`
	DatePattern string `json:"date_pattern" validate:"required"`
	TimeZone    string `json:"time_zone" validate:"required"`

	// Static export
	ExportPath string `json:"export_path" validate:"required"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Page cache
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "spacetraveling:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", time.Hour),

		// Content repository
		PrismicAPIURL:  getEnv("PRISMIC_API_URL", "https://spacetraveling.cdn.prismic.io/api/v2"),
		PostsType:      getEnv("POSTS_TYPE", "posts"),
		PageSize:       getEnvAsInt("POSTS_PAGE_SIZE", 1),
		MaxPages:       getEnvAsInt("MAX_PAGES", 20),
		ContentRetries: getEnvAsInt("CONTENT_RETRIES", 3),

		// Presentation
		Locale:      getEnv("LOCALE", "pt-BR"),
		DatePattern: getEnv("DATE_PATTERN", "dd LLL yyyy"),
		TimeZone:    getEnv("TIMEZONE", "UTC"),

		ExportPath: getEnv("EXPORT_PATH", "./dist"),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "spacetraveling"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("config: unknown TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the time zone used to render publication dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// R2Enabled reports whether static export should be published to R2.
func (c *Config) R2Enabled() bool {
	return c.R2BaseEndpoint() != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// R2BaseEndpoint returns R2_ENDPOINT, or the account endpoint derived from
// CLOUDFLARE_ACCOUNT_ID.
func (c *Config) R2BaseEndpoint() string {
	if c.R2Endpoint != "" {
		return c.R2Endpoint
	}
	if c.R2AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
	}
	return ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
