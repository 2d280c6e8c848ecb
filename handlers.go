package devlog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scato3/devlog/comments"
	"github.com/scato3/devlog/content"
	"github.com/scato3/devlog/metadata"
	"github.com/scato3/devlog/views"
)

const recentPosts = 5

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	if len(posts) > recentPosts {
		posts = posts[:recentPosts]
	}
	page := a.page(c, a.site.Root(a.Config.Title, a.Config.Description))
	page.JSONLD = views.WebsiteJsonLD(page.Site, a.Config.Description)
	return Render(c, views.Home(page, posts))
}

func (a *App) handleBlog(c echo.Context) error {
	ctx := c.Request().Context()
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(ctx, tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags(ctx)
	if err != nil {
		return err
	}
	meta := a.site.Build(metadata.Input{
		Title:       "Blog | " + a.Config.Name,
		Description: "개발하며 배운 것들을 기록합니다",
		Path:        "/blog",
	})
	return Render(c, views.BlogList(a.page(c, meta), posts, tags, tag))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	posts, err := a.Cache.ListPosts(ctx, "")
	if err != nil {
		return err
	}

	meta := a.site.Build(PostMetadata(post))
	page := a.page(c, meta)
	page.JSONLD = views.BlogPostingJsonLD(page.Site, post, meta.OpenGraph.Images)

	section := comments.Section(a.commentParams(page.Theme), comments.WithObserver(func(e comments.Event) {
		a.Log.Debug("comments", "state", e.State, "slug", post.Slug, "theme", e.Params.Theme, "children", e.Children)
	}))
	return Render(c, views.Post(page, post, views.FilterRelatedPosts(post, posts), section))
}

// PostMetadata describes a post for link previews: its cover image, the
// publication date and the reading time.
func PostMetadata(p content.Post) metadata.Input {
	description := p.Description
	if description == "" {
		description = p.Title
	}
	return metadata.Input{
		Title:       p.Title,
		Description: description,
		Path:        p.Link(),
		Image:       p.Image,
		Label1:      &metadata.Label{Name: "Written on", Data: p.Date},
		Label2:      &metadata.Label{Name: "Reading time", Data: fmt.Sprintf("%d min", p.ReadingTime())},
	}
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	path := c.Request().URL.Path
	switch {
	case code == http.StatusNotFound:
		meta := a.site.Build(metadata.Input{Title: "404 | " + a.Config.Name, Description: "페이지를 찾을 수 없습니다", Path: path})
		_ = RenderStatus(c, code, views.NotFound(a.page(c, meta)))
	case code >= 500:
		a.Log.Error("server error", "method", c.Request().Method, "path", path, "err", err)
		meta := a.site.Build(metadata.Input{Title: "500 | " + a.Config.Name, Description: "오류가 발생했습니다", Path: path})
		_ = RenderStatus(c, code, views.ServerError(a.page(c, meta)))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
