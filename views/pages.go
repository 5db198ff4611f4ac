package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/markdown"
)

// Home renders the featured post followed by recent posts. A positive
// nextShow adds a "load more" link revealing that many recent posts.
func Home(page Page, featured *content.Post, recent []content.Post, nextShow int) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		if featured == nil {
			h.raw(`<p>No posts yet.</p>`)
			return h.err
		}
		h.raw(`<section class="featured"><p class="meta">Featured</p><h2><a href="`)
		h.text(featured.Link())
		h.raw(`">`)
		h.text(featured.Title)
		h.raw(`</a></h2>`)
		postMeta(h, *featured)
		h.raw(`<p>`)
		h.text(featured.Excerpt)
		h.raw(`</p>`)
		tagList(h, featured.Tags)
		h.raw(`</section>`)

		if len(recent) > 0 {
			h.raw(`<section class="recent"><h2>Recent posts</h2>`)
			postList(h, recent)
			if nextShow > 0 {
				h.raw(`<a class="load-more" href="/?show=`, strconv.Itoa(nextShow), `">Load more</a>`)
			}
			h.raw(`</section>`)
		}
		return h.err
	})
	return Layout(page, WebsiteJsonLD(page.Site), body)
}

// PostPage renders a single post with its related posts.
func PostPage(page Page, post content.Post, related []content.Post) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<article><header><h1>`)
		h.text(post.Title)
		h.raw(`</h1>`)
		postMeta(h, post)
		tagList(h, post.Tags)
		h.raw(`</header>`)
		if post.Image != "" {
			h.raw(`<img class="cover" decoding="async" src="`)
			h.text(post.Image)
			h.raw(`" alt="`)
			h.text(post.Title)
			h.raw(`">`)
		}
		h.raw(`<div class="prose">`)
		h.component(markdown.HTML(post.Content))
		h.raw(`</div></article>`)

		if len(related) > 0 {
			h.raw(`<section class="related"><h2>Related posts</h2>`)
			postList(h, related)
			h.raw(`</section>`)
		}
		return h.err
	})
	return Layout(page, BlogPostingJsonLD(page.Site, post), body)
}

// TagPage lists the posts carrying tag.
func TagPage(page Page, tag string, posts []content.Post) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<h1>Posts tagged &ldquo;`)
		h.text(tag)
		h.raw(`&rdquo;</h1>`)
		postList(h, posts)
		return h.err
	})
	return Layout(page, "", body)
}

func TagsIndex(page Page, tags []TagCount) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<h1>Tags</h1>`)
		if len(tags) == 0 {
			h.raw(`<p>No tags yet.</p>`)
			return h.err
		}
		h.raw(`<ul class="tag-index">`)
		for _, t := range tags {
			h.raw(`<li><a href="`)
			h.text(TagURL(t.Tag))
			h.raw(`">`)
			h.text(t.Tag)
			h.raw(`</a> <span class="meta">(`)
			h.int(t.Count)
			h.raw(`)</span></li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
	return Layout(page, "", body)
}

func Archives(page Page, groups []content.YearGroup) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<h1>Archives</h1>`)
		for _, g := range groups {
			h.raw(`<section class="archive-year" id="y`, strconv.Itoa(g.Year), `"><h2>`)
			h.int(g.Year)
			h.raw(`</h2><ul>`)
			for _, p := range g.Posts {
				h.raw(`<li><time datetime="`)
				h.text(p.Date)
				h.raw(`">`)
				h.text(FormatDate(p.Date))
				h.raw(`</time><a href="`)
				h.text(p.Link())
				h.raw(`">`)
				h.text(p.Title)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></section>`)
		}
		return h.err
	})
	return Layout(page, "", body)
}

// SearchPage renders the search form and, for a non-empty query, its results.
func SearchPage(page Page, query string, results []content.Post) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<h1>Search</h1><form class="search-form" action="/search/" method="get">`,
			`<input type="search" name="query" placeholder="Search posts" value="`)
		h.text(query)
		h.raw(`"><button type="submit">Search</button></form>`)
		if query == "" {
			return h.err
		}
		if len(results) == 0 {
			h.raw(`<p>No posts match &ldquo;`)
			h.text(query)
			h.raw(`&rdquo;.</p>`)
			return h.err
		}
		h.raw(`<p class="meta">`)
		h.int(len(results))
		h.raw(` result(s)</p>`)
		postList(h, results)
		return h.err
	})
	return Layout(page, "", body)
}

func NotFound(page Page) templ.Component {
	return errorPage(page, "404", "That page does not exist.")
}

func ServerError(page Page) templ.Component {
	return errorPage(page, "500", "Something went wrong on our side. Please try again later.")
}

func errorPage(page Page, code, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<section class="error-page"><h1>`, code, `</h1><p>`)
		h.text(message)
		h.raw(`</p><p><a href="/">Back to the home page</a></p></section>`)
		return h.err
	})
	return Layout(page, "", body)
}
