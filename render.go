package devlog

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/scato3/devlog/metadata"
	"github.com/scato3/devlog/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// page builds the per-request view state around meta.
func (a *App) page(c echo.Context, meta metadata.Output) views.Page {
	return views.Page{
		Site:  a.viewSite(),
		Path:  c.Request().URL.Path,
		Theme: Theme(c),
		CSRF:  CsrfToken(c),
		Meta:  meta,
		Now:   a.now(),
	}
}
