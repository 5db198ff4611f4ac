// Package inkpost is a content-driven blog front-end built with Go, Echo,
// and templ. It serves posts read from Markdown files with YAML frontmatter,
// with tag pages, archives, search, RSS and a sitemap.
//
// Page templates are supplied through the ViewFuncs struct; the views
// package provides a complete default set.
package inkpost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/markdown"
	"github.com/eringen/inkpost/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(page views.Page, featured *content.Post, recent []content.Post, nextShow int) templ.Component
	Post        func(page views.Page, post content.Post, related []content.Post) templ.Component
	Tag         func(page views.Page, tag string, posts []content.Post) templ.Component
	Tags        func(page views.Page, tags []views.TagCount) templ.Component
	Archives    func(page views.Page, groups []content.YearGroup) templ.Component
	Search      func(page views.Page, query string, results []content.Post) templ.Component
	NotFound    func(page views.Page) templ.Component
	ServerError func(page views.Page) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Post:        views.PostPage,
		Tag:         views.TagPage,
		Tags:        views.TagsIndex,
		Archives:    views.Archives,
		Search:      views.SearchPage,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central inkpost application. It wires together the content
// pipeline, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content content.Querier
	Views   ViewFuncs

	store         content.Store
	searchLimiter *RateLimiter
	customRoutes  []func(*App)
	staticDir     string
	ready         bool
}

// New creates a new inkpost App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     DefaultViews(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init builds the content pipeline, bootstraps sample content when
// configured to, and registers middleware and routes. Start calls it; tests
// call it directly and drive a.Echo with httptest.
func (a *App) Init(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if err := a.OpenContent(ctx); err != nil {
		return err
	}
	a.searchLimiter = NewRateLimiter(a.Config.SearchRateLimit, a.Config.SearchRateWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// OpenContent builds the content pipeline without registering any HTTP
// routes. The command line tools use it directly.
func (a *App) OpenContent(ctx context.Context) error {
	if a.Content != nil {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}
	if a.store == nil {
		store, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		a.store = store
	}
	repo := content.NewRepository(a.store, markdown.New(), content.WithWorkers(a.Config.LoadWorkers))
	a.Content = content.NewCache(repo, a.Config.PostCacheTTL)
	return nil
}

func (a *App) openStore(ctx context.Context) (content.Store, error) {
	switch a.Config.ContentBackend {
	case "s3":
		s, err := content.NewS3StoreFromEnv(ctx, a.Config.S3Bucket, a.Config.S3Prefix, a.Config.S3MaxAttempts)
		if err != nil {
			return nil, fmt.Errorf("inkpost: init s3 store: %w", err)
		}
		return s, nil
	default:
		s := content.NewDirStore(a.Config.ContentDir)
		if a.Config.BootstrapSamples {
			if err := s.EnsureSampleContent(); err != nil {
				return nil, fmt.Errorf("inkpost: bootstrap content: %w", err)
			}
		}
		return s, nil
	}
}

// Start initializes the App and serves HTTP until Shutdown is called.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	log.Info().Str("addr", a.Config.Addr).Str("backend", a.Config.ContentBackend).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.searchLimiter != nil {
		a.searchLimiter.Stop()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stylesheet first, then the user's static assets.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public pages
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/archives/", a.handleArchives)
	e.GET("/search/", a.handleSearchPage)

	// JSON API
	api := e.Group("/api")
	api.GET("/search", a.handleAPISearch)
	api.GET("/posts", a.handleAPIPosts)
	api.GET("/posts/:slug", a.handleAPIPost)
	api.GET("/tags", a.handleAPITags)
	api.GET("/years", a.handleAPIYears)

	if a.Config.MetricsEnabled {
		a.setupMetrics()
	}
}
