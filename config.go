package devlog

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// SiteConfig holds all configuration for the site. It is built once at
// process start and injected into the App; nothing below reads the
// environment directly.
type SiteConfig struct {
	Name        string // Site name (default "hyunsu.dev")
	URL         string // Canonical origin without trailing slash (default "https://hyunsu-dev.vercel.app")
	Title       string // Home page title
	Description string // Home page and feed description
	Author      string // Footer and JSON-LD author
	GitHubURL   string

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")
	StaticDir    string // Static assets served under /public (default "public")

	AnalyticsID string // Google Analytics measurement ID, not validated
	Comments    CommentsConfig
	Timezone    string // IANA zone for footer dates (default "Asia/Seoul")

	SessionSecret string // Required: cookie session secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL   time.Duration // Post cache TTL (default 5min)
	ThemeRateLimit int           // Theme toggles per IP per minute (default 30)
}

// CommentsConfig selects the GitHub repository utterances stores comments in.
type CommentsConfig struct {
	Repo      string // owner/name
	IssueTerm string // default "pathname"
	Label     string // default "comments"
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "hyunsu.dev"
	}
	if c.URL == "" {
		c.URL = "https://hyunsu-dev.vercel.app"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Title == "" {
		c.Title = "HyunSu | Frontend Engineer"
	}
	if c.Description == "" {
		c.Description = "hyunsu.dev, 프론트엔드 개발자의 블로그"
	}
	if c.Author == "" {
		c.Author = "Hyunsu Shin"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.Comments.IssueTerm == "" {
		c.Comments.IssueTerm = "pathname"
	}
	if c.Comments.Label == "" {
		c.Comments.Label = "comments"
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Seoul"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.ThemeRateLimit <= 0 {
		c.ThemeRateLimit = 30
	}
}

// ConfigFromEnv reads the site configuration from environment variables.
// Unset keys fall back to the defaults applied by New.
func ConfigFromEnv() SiteConfig {
	ttl, _ := time.ParseDuration(os.Getenv("POST_CACHE_TTL"))
	themeLimit, _ := strconv.Atoi(os.Getenv("THEME_RATE_LIMIT"))
	return SiteConfig{
		Name:           os.Getenv("SITE_NAME"),
		URL:            os.Getenv("SITE_URL"),
		Title:          os.Getenv("SITE_TITLE"),
		Description:    os.Getenv("SITE_DESCRIPTION"),
		Author:         os.Getenv("SITE_AUTHOR"),
		GitHubURL:      EnvOr("GITHUB_URL", "https://github.com/scato3"),
		Addr:           os.Getenv("ADDR"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),
		StaticDir:      os.Getenv("STATIC_DIR"),
		AnalyticsID:    os.Getenv("GA_ID"),
		Timezone:       os.Getenv("SITE_TIMEZONE"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CookieSecure:   strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		PostCacheTTL:   ttl,
		ThemeRateLimit: themeLimit,
		Comments: CommentsConfig{
			Repo:      EnvOr("UTTERANCES_REPO", "scato3/blog-comments"),
			IssueTerm: os.Getenv("UTTERANCES_ISSUE_TERM"),
			Label:     os.Getenv("UTTERANCES_LABEL"),
		},
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithStore injects an already opened store instead of opening
// Config.DatabasePath during Setup.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithClock overrides the time source used for footer dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
