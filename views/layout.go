package views

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/scato3/devlog/metadata"
)

// Layout wraps body in the document shell: head metadata, analytics,
// header, main column and footer.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", "ko")
		if page.Theme == ThemeDark {
			h.attr("class", "dark")
		}
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.component(metadata.Head(page.Meta))
		h.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		h.raw(`<link rel="stylesheet" href="/public/styles.css">`)
		h.raw(`<link rel="alternate" type="application/rss+xml" title="RSS" href="/feed.xml">`)
		if page.JSONLD != "" {
			h.raw(`<script type="application/ld+json">`)
			h.raw(page.JSONLD)
			h.raw(`</script>`)
		}
		h.component(Analytics(page.Site.AnalyticsID))
		h.raw(`</head><body class="max-w-screen-md min-w-[320px] mx-auto"><main class="flex flex-col">`)
		h.component(Header(page))
		h.component(body)
		h.raw(`</main>`)
		h.component(Footer(page))
		h.raw(`</body></html>`)
	})
}

// Header renders the sticky top bar with navigation and the theme toggle.
func Header(page Page) templ.Component {
	return component(func(h *htmlWriter) {
		items := BuildNav(page.Path)
		h.raw(`<header class="h-14 px-5 sticky top-0 z-50 w-full border-b flex justify-between items-center bg-background"><div class="flex items-center">`)

		h.raw(`<details class="sm:hidden relative"><summary class="list-none cursor-pointer p-2" aria-label="Menu">&#9776;</summary><nav class="absolute left-0 top-10 flex flex-col bg-background border rounded px-4">`)
		for _, it := range items {
			renderNavItem(h, it)
		}
		h.raw(`</nav></details>`)

		h.raw(`<nav class="sm:flex hidden items-center space-x-6 text-sm font-medium gap-2">`)
		for _, it := range items {
			renderNavItem(h, it)
		}
		h.raw(`</nav></div><div class="flex items-center gap-1">`)
		h.component(ThemeToggle(page))
		h.raw(`</div></header>`)
	})
}

// ThemeToggle posts to /theme, which flips the session theme and redirects
// back to the current page.
func ThemeToggle(page Page) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form method="post" action="/theme">`)
		h.raw(`<input type="hidden" name="_csrf"`)
		h.attr("value", page.CSRF)
		h.raw(`><input type="hidden" name="next"`)
		h.attr("value", page.Path)
		h.raw(`><button type="submit" class="inline-flex h-10 w-10 items-center justify-center rounded-md border">`)
		h.raw(`<span class="h-5 w-5 dark:hidden" aria-hidden="true">&#9728;</span>`)
		h.raw(`<span class="h-5 w-5 hidden dark:block" aria-hidden="true">&#9790;</span>`)
		h.raw(`<span class="sr-only">Toggle theme</span></button></form>`)
	})
}

// Footer renders the social links and copyright line.
func Footer(page Page) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<footer class="flex flex-col items-center justify-center w-full h-28 gap-3"><div class="flex items-center justify-center gap-3">`)
		if page.Site.GitHubURL != "" {
			h.raw(`<a`)
			h.attr("href", page.Site.GitHubURL)
			h.raw(` target="_blank" rel="noopener noreferrer" class="text-slate-500">GitHub</a>`)
		}
		h.raw(`</div><span class="text-xs text-slate-500">Copyright © `)
		h.raw(strconv.Itoa(page.year()))
		h.raw(" ")
		h.text(page.Site.Author)
		h.raw(`</span></footer>`)
	})
}

// Analytics renders the Google Analytics loader for id. The id is used as
// configured; an empty id renders nothing.
func Analytics(id string) templ.Component {
	return component(func(h *htmlWriter) {
		if id == "" {
			return
		}
		h.raw(`<script async src="https://www.googletagmanager.com/gtag/js?id=`)
		h.text(url.QueryEscape(id))
		h.raw(`"></script><script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config',`)
		h.raw(marshalJSONLD(id))
		h.raw(`);</script>`)
	})
}
