package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Renderer converts a Markdown body to HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// Repository is the read-only query layer over a Store. Every call re-reads
// and re-derives all posts; wrap it in a Cache to memoize.
type Repository struct {
	store    Store
	renderer Renderer
	workers  int
	now      func() time.Time
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithWorkers bounds how many posts are loaded concurrently.
func WithWorkers(n int) RepositoryOption {
	return func(r *Repository) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithClock overrides the time used for posts without a date.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a Repository reading from store and rendering with renderer.
func NewRepository(store Store, renderer Renderer, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:    store,
		renderer: renderer,
		workers:  8,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AllPosts loads every post, newest first. Posts that are missing or fail to
// parse are left out; only an unreadable store fails the call.
func (r *Repository) AllPosts(ctx context.Context) ([]Post, error) {
	ids, err := r.store.ListPostIDs(ctx)
	if err != nil {
		return nil, err
	}
	ids = dedupeIDs(ids)

	loaded := make([]*Post, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := r.load(gctx, id)
			switch {
			case err == nil:
				loaded[i] = &p
				postsLoaded.Inc()
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case errors.Is(err, ErrNotFound):
				postsDropped.WithLabelValues("missing").Inc()
			case errors.Is(err, ErrParse):
				postsDropped.WithLabelValues("parse").Inc()
				log.Warn().Err(err).Str("slug", id).Msg("skipping malformed post")
			default:
				postsDropped.WithLabelValues("read").Inc()
				log.Warn().Err(err).Str("slug", id).Msg("skipping unreadable post")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(loaded))
	for _, p := range loaded {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	SortByDate(posts)
	return posts, nil
}

// PostBySlug loads a single post. It returns ErrNotFound when the slug has no
// backing content or names a duplicate that AllPosts drops, and a *ParseError
// when its frontmatter is malformed.
func (r *Repository) PostBySlug(ctx context.Context, slug string) (Post, error) {
	ids, err := r.store.ListPostIDs(ctx)
	if err != nil {
		return Post{}, err
	}
	if kept, ok := firstSpelling(ids, slug); ok && kept != slug {
		return Post{}, ErrNotFound
	}
	return r.load(ctx, slug)
}

// AllTags returns every distinct tag, sorted ascending.
func (r *Repository) AllTags(ctx context.Context) ([]string, error) {
	posts, err := r.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return CollectTags(posts), nil
}

// ArchiveYears returns every distinct year that has a post, newest first.
func (r *Repository) ArchiveYears(ctx context.Context) ([]int, error) {
	posts, err := r.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return CollectYears(posts), nil
}

func (r *Repository) load(ctx context.Context, slug string) (Post, error) {
	raw, err := r.store.ReadRaw(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Slug = slug
		}
		return Post{}, err
	}
	html, err := r.renderer.Render(doc.Body)
	if err != nil {
		return Post{}, fmt.Errorf("render %s: %w", slug, err)
	}
	return Derive(slug, doc, html, r.now()), nil
}

// SortByDate orders posts newest first by comparing their date strings.
// Posts with equal dates keep their relative order.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}

// CollectTags returns the distinct tags of posts in ascending order.
func CollectTags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// CollectYears returns the distinct years of posts in descending order.
// Posts whose date does not parse are ignored.
func CollectYears(posts []Post) []int {
	set := make(map[int]struct{})
	for _, p := range posts {
		year, ok := p.Year()
		if !ok {
			log.Debug().Str("slug", p.Slug).Str("date", p.Date).Msg("post date has no year")
			continue
		}
		set[year] = struct{}{}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// firstSpelling returns the id that wins deduplication for slug's case-folded
// key, if any id in ids shares it.
func firstSpelling(ids []string, slug string) (string, bool) {
	key := strings.ToLower(slug)
	for _, id := range ids {
		if strings.ToLower(id) == key {
			return id, true
		}
	}
	return "", false
}

// dedupeIDs drops ids that repeat an earlier id, ignoring case. The first
// occurrence in enumeration order wins.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]string, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		key := strings.ToLower(id)
		if first, ok := seen[key]; ok {
			log.Warn().Str("slug", id).Str("kept", first).Msg("duplicate post id ignored")
			continue
		}
		seen[key] = id
		out = append(out, id)
	}
	return out
}
