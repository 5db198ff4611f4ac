package inkpost

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost/content"
)

type apiError struct {
	Error string `json:"error"`
}

func (a *App) handleAPISearch(c echo.Context) error {
	ip := c.RealIP()
	if !a.searchLimiter.Allow(ip) {
		log.Warn().Str("ip", ip).Msg("search rate limited")
		return c.JSON(http.StatusTooManyRequests, apiError{Error: "too many requests"})
	}
	query := c.QueryParam("query")
	if query == "" {
		return c.JSON(http.StatusOK, []content.Post{})
	}
	posts, err := a.Content.AllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content.Search(posts, query))
}

func (a *App) handleAPIPosts(c echo.Context) error {
	posts, err := a.Content.AllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAPIPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Content.PostBySlug(c.Request().Context(), slug)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, post)
	case errors.Is(err, content.ErrParse):
		log.Warn().Err(err).Str("slug", slug).Msg("post failed to parse")
		return c.JSON(http.StatusNotFound, apiError{Error: "post not found"})
	case errors.Is(err, content.ErrNotFound):
		return c.JSON(http.StatusNotFound, apiError{Error: "post not found"})
	}
	return err
}

func (a *App) handleAPITags(c echo.Context) error {
	tags, err := a.Content.AllTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (a *App) handleAPIYears(c echo.Context) error {
	years, err := a.Content.ArchiveYears(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, years)
}
