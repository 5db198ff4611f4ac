package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/inkpost/content"
)

// Layout wraps body in the full document: head metadata, header, sidebar and
// footer. jsonLD, when non-empty, is emitted as a structured data block.
func Layout(page Page, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		head(h, page)
		if jsonLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script.
			h.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		}
		h.raw(`</head><body>`)

		h.raw(`<header class="site-header"><a class="site-title" href="/">`)
		h.text(page.Site.Name)
		h.raw(`</a><nav class="site-nav">`,
			`<a href="/">Home</a><a href="/archives/">Archives</a>`,
			`<a href="/tags/">Tags</a><a href="/search/">Search</a>`,
			`<a href="/feed.xml">RSS</a></nav></header>`)

		h.raw(`<div class="layout"><main>`)
		h.component(body)
		h.raw(`</main>`)
		sidebar(h, page)
		h.raw(`</div>`)

		h.raw(`<footer class="site-footer"><span>&copy; `, strconv.Itoa(time.Now().Year()), ` `)
		h.text(page.Site.Name)
		h.raw(`</span>`)
		if page.Site.Description != "" {
			h.raw(`<span>`)
			h.text(page.Site.Description)
			h.raw(`</span>`)
		}
		h.raw(`</footer></body></html>`)
		return h.err
	})
}

func head(h *htmlWriter, page Page) {
	m := page.Meta
	title := m.Title
	if title == "" {
		title = page.Site.Name
	}
	desc := m.Description
	if desc == "" {
		desc = page.Site.Description
	}
	h.raw(`<title>`)
	h.text(title)
	h.raw(`</title>`)
	if desc != "" {
		h.raw(`<meta name="description" content="`)
		h.text(desc)
		h.raw(`">`, `<meta property="og:description" content="`)
		h.text(desc)
		h.raw(`">`)
	}
	h.raw(`<meta property="og:title" content="`)
	h.text(title)
	h.raw(`"><meta property="og:site_name" content="`)
	h.text(page.Site.Name)
	h.raw(`">`)
	if m.OGType != "" {
		h.raw(`<meta property="og:type" content="`)
		h.text(m.OGType)
		h.raw(`">`)
	}
	if m.URL != "" {
		h.raw(`<link rel="canonical" href="`)
		h.text(m.URL)
		h.raw(`"><meta property="og:url" content="`)
		h.text(m.URL)
		h.raw(`">`)
	}
	if m.Image != "" {
		h.raw(`<meta property="og:image" content="`)
		h.text(m.Image)
		h.raw(`">`)
	}
	h.raw(`<link rel="alternate" type="application/rss+xml" title="`)
	h.text(page.Site.Name)
	h.raw(`" href="/feed.xml"><link rel="stylesheet" href="/public/style.css">`)
}

func sidebar(h *htmlWriter, page Page) {
	if len(page.Recent) == 0 && len(page.Tags) == 0 {
		return
	}
	h.raw(`<aside class="sidebar">`)
	if len(page.Recent) > 0 {
		h.raw(`<section><h2>Recent posts</h2><ul>`)
		for _, p := range page.Recent {
			h.raw(`<li><a href="`)
			h.text(p.Link())
			h.raw(`">`)
			h.text(p.Title)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></section>`)
	}
	if len(page.Tags) > 0 {
		h.raw(`<section><h2>Tags</h2><ul class="tags">`)
		for _, t := range page.Tags {
			h.raw(`<li><a href="`)
			h.text(TagURL(t.Tag))
			h.raw(`">`)
			h.text(t.Tag)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></section>`)
	}
	h.raw(`</aside>`)
}

func postMeta(h *htmlWriter, p content.Post) {
	h.raw(`<p class="meta"><span><time datetime="`)
	h.text(p.Date)
	h.raw(`">`)
	h.text(FormatDate(p.Date))
	h.raw(`</time></span><span>`)
	h.text(p.Author)
	h.raw(`</span><span>`)
	h.int(p.ReadingTime)
	h.raw(` min read</span></p>`)
}

func tagList(h *htmlWriter, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.raw(`<ul class="tags">`)
	for _, t := range tags {
		h.raw(`<li><a href="`)
		h.text(TagURL(t))
		h.raw(`">`)
		h.text(t)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul>`)
}

func postCard(h *htmlWriter, p content.Post) {
	h.raw(`<article class="post-card"><h3><a href="`)
	h.text(p.Link())
	h.raw(`">`)
	h.text(p.Title)
	h.raw(`</a></h3>`)
	postMeta(h, p)
	h.raw(`<p>`)
	h.text(p.Excerpt)
	h.raw(`</p>`)
	tagList(h, p.Tags)
	h.raw(`</article>`)
}

func postList(h *htmlWriter, posts []content.Post) {
	for _, p := range posts {
		postCard(h, p)
	}
}
