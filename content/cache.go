package content

import (
	"context"
	"sync"
	"time"
)

// Cache is a process-wide memo of a Querier's post listing with a TTL. A
// zero TTL disables memoization and every call goes to the source.
type Cache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []string
	years   []int
	fetched time.Time
	ttl     time.Duration
	source  Querier
}

// NewCache creates a Cache in front of source.
func NewCache(source Querier, ttl time.Duration) *Cache {
	return &Cache{source: source, ttl: ttl}
}

func (c *Cache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.years = nil
	c.mu.Unlock()
}

func (c *Cache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.source.AllPosts(ctx)
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = CollectTags(posts)
	c.years = CollectYears(posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached listing after ensuring it is fresh. It
// tries a read lock first and only takes the write lock to reload.
func (c *Cache) ensureLoaded(ctx context.Context) ([]Post, []string, []int, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags, years := c.posts, c.tags, c.years
		c.mu.RUnlock()
		return posts, tags, years, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.tags, c.years, nil
}

// AllPosts returns the cached listing. Callers must not modify the slice.
func (c *Cache) AllPosts(ctx context.Context) ([]Post, error) {
	if c.ttl <= 0 {
		return c.source.AllPosts(ctx)
	}
	posts, _, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// AllTags returns the distinct tags of the cached listing.
func (c *Cache) AllTags(ctx context.Context) ([]string, error) {
	if c.ttl <= 0 {
		return c.source.AllTags(ctx)
	}
	_, tags, _, err := c.ensureLoaded(ctx)
	return tags, err
}

// ArchiveYears returns the distinct years of the cached listing.
func (c *Cache) ArchiveYears(ctx context.Context) ([]int, error) {
	if c.ttl <= 0 {
		return c.source.ArchiveYears(ctx)
	}
	_, _, years, err := c.ensureLoaded(ctx)
	return years, err
}

// PostBySlug serves listed posts from the cache and falls back to the source
// for anything else, so not-found and parse errors come from the source.
func (c *Cache) PostBySlug(ctx context.Context, slug string) (Post, error) {
	if c.ttl <= 0 {
		return c.source.PostBySlug(ctx, slug)
	}
	posts, _, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return c.source.PostBySlug(ctx, slug)
}
