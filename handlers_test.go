package devlog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/scato3/devlog/content"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	s := setupTestStore(t)
	seed(t, s,
		content.Post{
			Slug:        "hello",
			Title:       "Hello",
			Date:        "2024-01-15",
			Tags:        []string{"go", "web"},
			Description: "First post",
			Content:     "# Hi\n\nSome **bold** text.",
			Published:   true,
		},
		content.Post{Slug: "second", Title: "Second", Date: "2024-02-01", Tags: []string{"go"}, Published: true},
		content.Post{Slug: "draft", Title: "Draft", Date: "2024-03-01", Published: false},
	)
	a := New(SiteConfig{
		SessionSecret: "test-secret",
		StaticDir:     t.TempDir(),
		Comments:      CommentsConfig{Repo: "scato3/blog-comments"},
	},
		WithStore(s),
		WithLogger(log.New(io.Discard)),
		WithClock(func() time.Time { return time.Date(2024, 12, 31, 16, 0, 0, 0, time.UTC) }),
	)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, a *App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(a, req)
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).Attr("content")
	return v
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{}, WithStore(setupTestStore(t)), WithLogger(log.New(io.Discard)))
	if err := a.Setup(); err == nil {
		t.Error("Setup without SessionSecret should fail")
	}
}

func TestHomePage(t *testing.T) {
	a := newTestApp(t)
	rec := get(t, a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)

	if got := metaContent(doc, `meta[property="og:type"]`); got != "website" {
		t.Errorf("og:type = %q, want website", got)
	}
	if got := metaContent(doc, `meta[property="og:url"]`); got != "https://hyunsu-dev.vercel.app" {
		t.Errorf("og:url = %q", got)
	}
	if strings.Contains(metaContent(doc, `meta[name="description"]`), "현수 개발 블로그") {
		t.Error("home description should not carry the brand suffix")
	}
	if n := doc.Find(`a[href="/blog/draft"]`).Length(); n != 0 {
		t.Error("drafts must not be listed")
	}
	if n := doc.Find(`a[href="/blog/hello"]`).Length(); n == 0 {
		t.Error("home should link to recent posts")
	}
	if !strings.Contains(doc.Find("footer").Text(), "2025") {
		t.Errorf("footer should use Asia/Seoul year, got %q", doc.Find("footer").Text())
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy header")
	}
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t)
	rec := get(t, a, "/blog/hello")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)

	if got := doc.Find("title").Text(); got != "Hello" {
		t.Errorf("title = %q", got)
	}
	if got := metaContent(doc, `meta[property="og:url"]`); got != "https://hyunsu-dev.vercel.app/blog/hello" {
		t.Errorf("og:url = %q", got)
	}
	if got := metaContent(doc, `meta[property="og:image"]`); got != "https://hyunsu-dev.vercel.app/main.jpg" {
		t.Errorf("og:image = %q", got)
	}
	if got := metaContent(doc, `meta[name="description"]`); got != "First post | 현수 개발 블로그, hyunsu.dev" {
		t.Errorf("description = %q", got)
	}
	if n := doc.Find(`meta[property="og:type"]`).Length(); n != 0 {
		t.Error("post pages should not declare og:type")
	}
	if got := metaContent(doc, `meta[name="twitter:label1"]`); got != "Written on" {
		t.Errorf("twitter:label1 = %q", got)
	}
	if got := metaContent(doc, `meta[name="twitter:data1"]`); got != "2024-01-15" {
		t.Errorf("twitter:data1 = %q", got)
	}
	if got := metaContent(doc, `meta[name="twitter:data2"]`); got != "1 min" {
		t.Errorf("twitter:data2 = %q", got)
	}
	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://hyunsu-dev.vercel.app/blog/hello" {
		t.Errorf("canonical = %q", href)
	}

	scripts := doc.Find("#comments script")
	if scripts.Length() != 1 {
		t.Fatalf("comment scripts = %d, want 1", scripts.Length())
	}
	if v, _ := scripts.Attr("theme"); v != "github-light" {
		t.Errorf("comment theme = %q", v)
	}
	if v, _ := scripts.Attr("repo"); v != "scato3/blog-comments" {
		t.Errorf("comment repo = %q", v)
	}
	if v, _ := scripts.Attr("issue-term"); v != "pathname" {
		t.Errorf("issue-term = %q", v)
	}

	if doc.Find(".prose h1#hi").Length() != 1 {
		t.Error("markdown heading id missing")
	}
	if doc.Find(`a[href="/blog/second"]`).Length() == 0 {
		t.Error("related post sharing a tag should be linked")
	}
	if doc.Find(`script[type="application/ld+json"]`).Length() != 1 {
		t.Error("missing BlogPosting JSON-LD")
	}
}

func TestNotFound(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/blog/missing", "/blog/draft", "/nope"} {
		rec := get(t, a, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
			t.Errorf("GET %s content type = %q", path, rec.Header().Get("Content-Type"))
		}
	}
}

func TestBlogTagFilter(t *testing.T) {
	a := newTestApp(t)
	doc := document(t, get(t, a, "/blog?tag=web"))
	if doc.Find(`a[href="/blog/hello"]`).Length() == 0 {
		t.Error("tag filter should keep hello")
	}
	if doc.Find(`a[href="/blog/second"]`).Length() != 0 {
		t.Error("tag filter should drop second")
	}
	if got := metaContent(doc, `meta[property="og:url"]`); got != "https://hyunsu-dev.vercel.app/blog" {
		t.Errorf("og:url = %q", got)
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := get(t, a, "/blog/hello/")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/hello" {
		t.Errorf("Location = %q", loc)
	}
}

func TestFeedSitemapRobots(t *testing.T) {
	a := newTestApp(t)

	feed := get(t, a, "/feed.xml")
	if feed.Code != http.StatusOK {
		t.Fatalf("feed status = %d", feed.Code)
	}
	body := feed.Body.String()
	if !strings.Contains(body, "<link>https://hyunsu-dev.vercel.app/blog/hello</link>") {
		t.Errorf("feed missing post link:\n%s", body)
	}
	if strings.Contains(body, "/blog/draft") {
		t.Error("feed should not list drafts")
	}
	if !strings.Contains(body, "+0900") {
		t.Errorf("pubDate should be in the site timezone:\n%s", body)
	}

	sitemap := get(t, a, "/sitemap.xml").Body.String()
	for _, want := range []string{
		"<loc>https://hyunsu-dev.vercel.app</loc>",
		"<loc>https://hyunsu-dev.vercel.app/blog</loc>",
		"<loc>https://hyunsu-dev.vercel.app/blog/second</loc>",
		"<lastmod>2024-02-01</lastmod>",
	} {
		if !strings.Contains(sitemap, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}

	robots := get(t, a, "/robots.txt")
	if !strings.Contains(robots.Body.String(), "Sitemap: https://hyunsu-dev.vercel.app/sitemap.xml") {
		t.Errorf("robots.txt = %q", robots.Body.String())
	}
	if cc := robots.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("robots Cache-Control = %q", cc)
	}
}

func TestThemeToggle(t *testing.T) {
	a := newTestApp(t)

	first := get(t, a, "/blog/hello")
	csrf := cookie(first, "_csrf")
	if csrf == nil {
		t.Fatal("GET should issue a _csrf cookie")
	}
	doc := document(t, first)
	if doc.Find("html.dark").Length() != 0 {
		t.Error("default theme should be light")
	}
	if v, _ := doc.Find(`form[action="/theme"] input[name="_csrf"]`).Attr("value"); v != csrf.Value {
		t.Errorf("form token = %q, cookie token = %q", v, csrf.Value)
	}

	form := url.Values{"next": {"/blog/hello"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", csrf.Value)
	req.AddCookie(csrf)
	rec := serve(a, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /theme status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/hello" {
		t.Errorf("Location = %q", loc)
	}
	prefs := cookie(rec, sessionName)
	if prefs == nil {
		t.Fatal("POST /theme should set the session cookie")
	}

	doc = document(t, get(t, a, "/blog/hello", csrf, prefs))
	if doc.Find("html.dark").Length() != 1 {
		t.Error("theme should be dark after toggle")
	}
	if v, _ := doc.Find("#comments script").Attr("theme"); v != "github-dark" {
		t.Errorf("comment theme = %q, want github-dark", v)
	}
}

func TestThemeToggleRejectsMissingToken(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodPost, "/theme", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/blog/hello", "/blog/hello"},
		{"/blog?tag=go", "/blog?tag=go"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{`/\evil.example`, "/"},
		{"blog", "/"},
	}
	for _, tt := range tests {
		if got := localPath(tt.in); got != tt.want {
			t.Errorf("localPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPostMetadata(t *testing.T) {
	in := PostMetadata(content.Post{Slug: "x", Title: "Only title", Date: "2024-05-01", Image: "/public/uploads/x.jpg"})
	if in.Description != "Only title" {
		t.Errorf("Description = %q, want title fallback", in.Description)
	}
	if in.Path != "/blog/x" || in.Image != "/public/uploads/x.jpg" {
		t.Errorf("Path/Image = %q %q", in.Path, in.Image)
	}
	if in.Label2 == nil || in.Label2.Data != "1 min" {
		t.Errorf("Label2 = %+v", in.Label2)
	}
}
