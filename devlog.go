// Package devlog serves the hyunsu.dev blog: post pages with Open Graph and
// Twitter metadata, an embedded utterances comment widget, a session-backed
// theme toggle, RSS and sitemap.
package devlog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/scato3/devlog/metadata"
	"github.com/scato3/devlog/views"
)

// App wires together the store, cache, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Log    *log.Logger

	limiter  *Limiter
	site     metadata.Site
	location *time.Location
	now      func() time.Time
	ownStore bool
}

// New creates an App with the given configuration. Call Setup (or Start) to
// open the store and register routes.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Log:    log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "devlog"}),
		now:    time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	a.site = metadata.Default
	a.site.Origin = cfg.URL
	return a
}

// Setup validates the configuration, opens the store and registers
// middleware and routes. Call it once.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return errors.New("devlog: SessionSecret is required")
	}

	loc, err := time.LoadLocation(a.Config.Timezone)
	if err != nil {
		return fmt.Errorf("devlog: load timezone %q: %w", a.Config.Timezone, err)
	}
	a.location = loc

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("devlog: init store: %w", err)
		}
		a.Store = store
		a.ownStore = true
	}
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.limiter = NewLimiter(a.Config.ThemeRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start runs Setup and serves until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Log.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Log.Info("shutting down")
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog/:slug", a.handlePost)
	e.POST("/theme", a.handleTheme, a.limiter.Middleware)
}

// Close stops background work and releases the store if the App opened it.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil && a.ownStore {
		return a.Store.Close()
	}
	return nil
}

func (a *App) viewSite() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Author:      a.Config.Author,
		GitHubURL:   a.Config.GitHubURL,
		AnalyticsID: a.Config.AnalyticsID,
		Location:    a.location,
	}
}
