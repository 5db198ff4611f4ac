package inkpost

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/views"
)

const (
	// PostsPerLoad is how many more posts each "load more" step reveals.
	PostsPerLoad = 6
	// RelatedLimit caps the related posts shown under a post.
	RelatedLimit = 3
	// SidebarRecent is how many posts the sidebar lists.
	SidebarRecent = 5
)

// page assembles the shared page data, including the sidebar, from the
// posts the handler already loaded.
func (a *App) page(posts []content.Post, meta views.PageMeta) views.Page {
	recent := posts
	if len(recent) > SidebarRecent {
		recent = recent[:SidebarRecent]
	}
	return views.Page{
		Site:   a.siteView(),
		Meta:   meta,
		Recent: recent,
		Tags:   views.CountTags(content.CollectTags(posts), posts),
	}
}

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	pg := a.page(posts, views.PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
	})

	show := parseShow(c.QueryParam("show"), PostsPerLoad)
	var featured *content.Post
	var recent []content.Post
	next := 0
	if len(posts) > 0 {
		featured = &posts[0]
		rest := posts[1:]
		if show < len(rest) {
			recent = rest[:show]
			next = show + PostsPerLoad
		} else {
			recent = rest
		}
	}
	return Render(c, a.Views.Home(pg, featured, recent, next))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	post, err := a.Content.PostBySlug(ctx, slug)
	if err != nil {
		var perr *content.ParseError
		switch {
		case errors.As(err, &perr):
			log.Warn().Err(err).Str("slug", slug).Msg("post failed to parse")
			return echo.NewHTTPError(http.StatusNotFound)
		case errors.Is(err, content.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	pg := a.page(posts, views.PageMeta{
		Title:       post.Title + " | " + a.Config.Name,
		Description: post.Excerpt,
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
		Image:       post.Image,
	})
	related := content.RelatedPosts(post, posts, RelatedLimit)
	return Render(c, a.Views.Post(pg, post, related))
}

func (a *App) handleTags(c echo.Context) error {
	posts, err := a.Content.AllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	pg := a.page(posts, views.PageMeta{
		Title:       "Tags | " + a.Config.Name,
		Description: "All tags on " + a.Config.Name,
		URL:         BuildURL(a.Config.URL, "tags"),
		OGType:      "website",
	})
	return Render(c, a.Views.Tags(pg, pg.Tags))
}

func (a *App) handleTag(c echo.Context) error {
	ctx := c.Request().Context()
	raw, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	matched := content.FilterByTag(posts, raw)
	if len(matched) == 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	name := tagName(matched[0], raw)
	pg := a.page(posts, views.PageMeta{
		Title:       "Posts tagged " + name + " | " + a.Config.Name,
		Description: "Posts tagged " + name,
		URL:         BuildURL(a.Config.URL, "tags", content.TagSlug(name)),
		OGType:      "website",
	})
	return Render(c, a.Views.Tag(pg, name, matched))
}

// tagName recovers the tag as written in the post for a requested slug.
func tagName(p content.Post, slug string) string {
	want := content.TagSlug(strings.ReplaceAll(slug, "-", " "))
	for _, t := range p.Tags {
		if content.TagSlug(t) == want {
			return t
		}
	}
	return slug
}

func (a *App) handleArchives(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	pg := a.page(posts, views.PageMeta{
		Title:       "Archives | " + a.Config.Name,
		Description: "Every post on " + a.Config.Name + " by year",
		URL:         BuildURL(a.Config.URL, "archives"),
		OGType:      "website",
	})
	return Render(c, a.Views.Archives(pg, content.GroupByYear(posts)))
}

func (a *App) handleSearchPage(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParam("query")
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	pg := a.page(posts, views.PageMeta{
		Title:       "Search | " + a.Config.Name,
		Description: "Search " + a.Config.Name,
		URL:         BuildURL(a.Config.URL, "search"),
		OGType:      "website",
	})
	return Render(c, a.Views.Search(pg, query, content.Search(posts, query)))
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Content.AllPosts(ctx)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, content.CollectTags(posts))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Content.AllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
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

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if code >= 500 {
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("api error")
		}
		_ = c.JSON(code, apiError{Error: strings.ToLower(http.StatusText(code))})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(a.errorPage("Not found")))
	case code >= 500:
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.errorPage("Server error")))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}

// errorPage builds page data without touching the content pipeline, which
// may be the thing that failed.
func (a *App) errorPage(title string) views.Page {
	return views.Page{
		Site: a.siteView(),
		Meta: views.PageMeta{Title: title + " | " + a.Config.Name, OGType: "website"},
	}
}
