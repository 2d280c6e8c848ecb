package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/scato3/devlog/content"
	"github.com/scato3/devlog/markdown"
)

// Home renders the landing page with the most recent posts.
func Home(page Page, recent []content.Post) templ.Component {
	return Layout(page, component(func(h *htmlWriter) {
		h.raw(`<section class="flex flex-col gap-3 px-5 py-10"><h1 class="text-2xl font-bold">`)
		h.text(page.Meta.Title)
		h.raw(`</h1><p class="text-foreground/70">`)
		h.text(page.Meta.Description)
		h.raw(`</p></section><section class="px-5"><h2 class="text-lg font-semibold mb-4">Recent posts</h2>`)
		postList(h, recent)
		h.raw(`<a href="/blog" class="inline-block mt-6 text-sm underline underline-offset-4">All posts →</a></section>`)
	}))
}

// BlogList renders every published post, optionally filtered by activeTag.
func BlogList(page Page, posts []content.Post, tags []string, activeTag string) templ.Component {
	return Layout(page, component(func(h *htmlWriter) {
		h.raw(`<section class="px-5 py-10"><h1 class="text-2xl font-bold mb-6">Blog</h1>`)
		if len(tags) > 0 {
			h.raw(`<div class="flex flex-wrap gap-2 mb-8">`)
			h.raw(`<a href="/blog"`)
			h.attr("class", TagClass(activeTag == ""))
			h.raw(`>all</a>`)
			for _, t := range tags {
				h.raw(`<a`)
				h.attr("href", TagHref(t))
				h.attr("class", TagClass(content.NormalizeTag(t) == content.NormalizeTag(activeTag)))
				h.raw(`>`)
				h.text(t)
				h.raw(`</a>`)
			}
			h.raw(`</div>`)
		}
		postList(h, posts)
		h.raw(`</section>`)
	}))
}

// Post renders a single article followed by related posts and the comments
// section.
func Post(page Page, post content.Post, related []content.Post, comments templ.Component) templ.Component {
	return Layout(page, component(func(h *htmlWriter) {
		h.raw(`<article class="px-5 py-10"><header class="mb-8"><h1 class="text-3xl font-bold">`)
		h.text(post.Title)
		h.raw(`</h1><div class="mt-3 flex flex-wrap items-center gap-3 text-sm text-foreground/60"><time`)
		h.attr("datetime", post.Date)
		h.raw(`>`)
		h.text(FormatDate(post.Date))
		h.raw(`</time><span>`)
		h.raw(strconv.Itoa(post.ReadingTime()))
		h.raw(` min read</span>`)
		for _, t := range post.Tags {
			h.raw(`<a`)
			h.attr("href", TagHref(t))
			h.attr("class", TagClass(false))
			h.raw(`>`)
			h.text(t)
			h.raw(`</a>`)
		}
		h.raw(`</div></header><div class="prose dark:prose-invert max-w-none">`)
		h.component(markdown.Markdown(post.Content))
		h.raw(`</div>`)
		if len(related) > 0 {
			h.raw(`<aside class="mt-12 border-t pt-6"><h2 class="text-lg font-semibold mb-4">Related posts</h2>`)
			postList(h, related)
			h.raw(`</aside>`)
		}
		h.component(comments)
		h.raw(`</article>`)
	}))
}

// NotFound renders the 404 page.
func NotFound(page Page) templ.Component {
	return Layout(page, message("404", "페이지를 찾을 수 없습니다."))
}

// ServerError renders the 500 page.
func ServerError(page Page) templ.Component {
	return Layout(page, message("500", "잠시 후 다시 시도해 주세요."))
}

func message(title, body string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="px-5 py-20 text-center"><h1 class="text-4xl font-bold">`)
		h.text(title)
		h.raw(`</h1><p class="mt-4 text-foreground/70">`)
		h.text(body)
		h.raw(`</p><a href="/" class="inline-block mt-8 underline underline-offset-4">Home</a></section>`)
	})
}

func postList(h *htmlWriter, posts []content.Post) {
	if len(posts) == 0 {
		h.raw(`<p class="text-foreground/60">아직 글이 없습니다.</p>`)
		return
	}
	h.raw(`<ul class="flex flex-col gap-6">`)
	for _, p := range posts {
		h.raw(`<li><a class="group block"`)
		h.attr("href", p.Link())
		h.raw(`><h3 class="font-semibold group-hover:underline">`)
		h.text(p.Title)
		h.raw(`</h3>`)
		if p.Description != "" {
			h.raw(`<p class="text-sm text-foreground/70">`)
			h.text(p.Description)
			h.raw(`</p>`)
		}
		h.raw(`<time class="text-xs text-foreground/50"`)
		h.attr("datetime", p.Date)
		h.raw(`>`)
		h.text(FormatDate(p.Date))
		h.raw(`</time></a></li>`)
	}
	h.raw(`</ul>`)
}
