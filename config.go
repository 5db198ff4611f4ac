package inkpost

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/inkpost/content"
)

// SiteConfig holds all configuration for an inkpost site.
type SiteConfig struct {
	Name        string `mapstructure:"SITE_NAME"`        // Site name (default "Blog")
	URL         string `mapstructure:"SITE_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"SITE_DESCRIPTION"` // Site description for RSS and meta tags
	Author      string `mapstructure:"SITE_AUTHOR"`      // Author name for JSON-LD

	Addr string `mapstructure:"ADDR"` // Listen address (default ":3000")

	ContentBackend   string `mapstructure:"CONTENT_BACKEND"`   // "fs" or "s3" (default "fs")
	ContentDir       string `mapstructure:"CONTENT_DIR"`       // Content root for "fs" (default "content/posts")
	S3Bucket         string `mapstructure:"S3_BUCKET"`         // Bucket for "s3"
	S3Prefix         string `mapstructure:"S3_PREFIX"`         // Key prefix for "s3" (default "posts/")
	S3MaxAttempts    int    `mapstructure:"S3_MAX_ATTEMPTS"`   // Attempts per S3 request (default 5)
	BootstrapSamples bool   `mapstructure:"BOOTSTRAP_SAMPLES"` // Write sample posts when ContentDir is missing

	PostCacheTTL time.Duration `mapstructure:"POST_CACHE_TTL"` // Listing memo TTL, 0 disables (default 0)
	LoadWorkers  int           `mapstructure:"LOAD_WORKERS"`   // Posts parsed concurrently (default 8)

	SearchRateLimit  int           `mapstructure:"SEARCH_RATE_LIMIT"`  // Search API requests per window per IP (default 60)
	SearchRateWindow time.Duration `mapstructure:"SEARCH_RATE_WINDOW"` // (default 1m)

	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"` // Serve /metrics
	LogLevel       string `mapstructure:"LOG_LEVEL"`       // zerolog level (default "info")
	LogFormat      string `mapstructure:"LOG_FORMAT"`      // "json" or "console" (default "json")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentBackend == "" {
		c.ContentBackend = "fs"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.S3Prefix == "" {
		c.S3Prefix = "posts/"
	}
	if c.S3MaxAttempts == 0 {
		c.S3MaxAttempts = 5
	}
	if c.LoadWorkers == 0 {
		c.LoadWorkers = 8
	}
	if c.SearchRateLimit == 0 {
		c.SearchRateLimit = 60
	}
	if c.SearchRateWindow == 0 {
		c.SearchRateWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

func (c *SiteConfig) validate() error {
	switch c.ContentBackend {
	case "fs":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("inkpost: S3_BUCKET is required for the s3 content backend")
		}
	default:
		return fmt.Errorf("inkpost: unknown CONTENT_BACKEND %q", c.ContentBackend)
	}
	if c.SearchRateWindow <= 0 {
		return fmt.Errorf("inkpost: SEARCH_RATE_WINDOW must be positive, got %s", c.SearchRateWindow)
	}
	if c.SearchRateLimit <= 0 {
		return fmt.Errorf("inkpost: SEARCH_RATE_LIMIT must be positive, got %d", c.SearchRateLimit)
	}
	return nil
}

// LoadConfig reads inkpost.yaml from the working directory if present, then
// environment variables, falling back to defaults.
func LoadConfig() (SiteConfig, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("inkpost")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("SITE_NAME", "Blog")
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("SITE_DESCRIPTION", "")
	v.SetDefault("SITE_AUTHOR", "")
	v.SetDefault("ADDR", ":3000")
	v.SetDefault("CONTENT_BACKEND", "fs")
	v.SetDefault("CONTENT_DIR", "content/posts")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "posts/")
	v.SetDefault("S3_MAX_ATTEMPTS", 5)
	v.SetDefault("BOOTSTRAP_SAMPLES", true)
	v.SetDefault("POST_CACHE_TTL", "0s")
	v.SetDefault("LOAD_WORKERS", 8)
	v.SetDefault("SEARCH_RATE_LIMIT", 60)
	v.SetDefault("SEARCH_RATE_WINDOW", "1m")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("inkpost: read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("inkpost: decode config: %w", err)
	}
	cfg.ContentBackend = strings.ToLower(strings.TrimSpace(cfg.ContentBackend))
	cfg.setDefaults()
	return cfg, cfg.validate()
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts. A route is served
// at exactly the path it is registered with; unregistered paths without a
// trailing slash are redirected to the slashed form.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithStore replaces the configured content backend.
func WithStore(s content.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithViews replaces the built-in page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
