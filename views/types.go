package views

import (
	"time"

	"github.com/scato3/devlog/metadata"
)

// Site holds site-wide settings every page renders with. It is built once
// at startup from the server configuration.
type Site struct {
	Name        string // shown in the header and feed
	URL         string // canonical origin
	Author      string // footer copyright and JSON-LD
	GitHubURL   string
	AnalyticsID string // Google Analytics measurement ID, passed through as configured
	Location    *time.Location
}

// Page carries the per-request state the layout needs.
type Page struct {
	Site   Site
	Path   string // request path, drives nav highlighting
	Theme  string // ThemeLight or ThemeDark
	CSRF   string
	Meta   metadata.Output
	JSONLD string // optional structured data block
	Now    time.Time
}

// Themes understood by the layout.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// year returns the current year in the site's timezone.
func (p Page) year() int {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	if p.Site.Location != nil {
		now = now.In(p.Site.Location)
	}
	return now.Year()
}
