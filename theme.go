package devlog

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/scato3/devlog/comments"
	"github.com/scato3/devlog/views"
)

const (
	sessionName = "prefs"
	themeKey    = "theme"
)

// Theme returns the visitor's theme from the session, light by default.
func Theme(c echo.Context) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return views.ThemeLight
	}
	if t, ok := sess.Values[themeKey].(string); ok && t == views.ThemeDark {
		return views.ThemeDark
	}
	return views.ThemeLight
}

func setTheme(c echo.Context, theme string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[themeKey] = theme
	return sess.Save(c.Request(), c.Response())
}

// handleTheme flips between light and dark and sends the visitor back to
// the page the toggle was pressed on.
func (a *App) handleTheme(c echo.Context) error {
	next := views.ThemeDark
	if Theme(c) == views.ThemeDark {
		next = views.ThemeLight
	}
	if err := setTheme(c, next); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, localPath(c.FormValue("next")))
}

// localPath keeps redirects on this site: anything that is not a plain
// absolute path collapses to "/".
func localPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return u.RequestURI()
}

// commentTheme maps the site theme onto an utterances theme.
func commentTheme(theme string) string {
	if theme == views.ThemeDark {
		return "github-dark"
	}
	return "github-light"
}

func (a *App) commentParams(theme string) comments.Params {
	return comments.Params{
		Repo:      a.Config.Comments.Repo,
		IssueTerm: a.Config.Comments.IssueTerm,
		Label:     a.Config.Comments.Label,
		Theme:     commentTheme(theme),
	}
}
