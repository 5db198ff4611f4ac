// Package lambdaapi exposes the post queries as an API Gateway proxy
// handler for AWS Lambda.
package lambdaapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost/content"
)

// Handler routes API Gateway requests to a content.Querier.
type Handler struct {
	Content content.Querier
}

func New(q content.Querier) *Handler {
	return &Handler{Content: q}
}

// Handle serves GET /posts, /posts/{slug}, /tags, /years and /search?query=.
// Failures are reported in the response; the returned error is always nil so
// API Gateway never sees a bare Lambda error.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != http.MethodGet {
		return MethodNotAllowed(), nil
	}
	path := strings.TrimSuffix(req.Path, "/")
	logger := log.With().Str("method", req.HTTPMethod).Str("path", req.Path).Logger()

	var (
		data interface{}
		err  error
	)
	switch {
	case path == "/posts":
		data, err = h.Content.AllPosts(ctx)
	case strings.HasPrefix(path, "/posts/"):
		slug := strings.TrimPrefix(path, "/posts/")
		if s := req.PathParameters["slug"]; s != "" {
			slug = s
		}
		data, err = h.Content.PostBySlug(ctx, slug)
	case path == "/tags":
		data, err = h.Content.AllTags(ctx)
	case path == "/years":
		data, err = h.Content.ArchiveYears(ctx)
	case path == "/search":
		data, err = h.search(ctx, req.QueryStringParameters["query"])
	default:
		return NotFound("not found"), nil
	}

	switch {
	case err == nil:
		return Success(data), nil
	case errors.Is(err, content.ErrNotFound):
		return NotFound("post not found"), nil
	case errors.Is(err, content.ErrParse):
		logger.Warn().Err(err).Msg("post failed to parse")
		return NotFound("post not found"), nil
	default:
		logger.Error().Err(err).Msg("request failed")
		return InternalServerError("internal server error"), nil
	}
}

func (h *Handler) search(ctx context.Context, query string) ([]content.Post, error) {
	if query == "" {
		return []content.Post{}, nil
	}
	posts, err := h.Content.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return content.Search(posts, query), nil
}
