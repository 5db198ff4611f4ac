package content

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// countingQuerier wraps a Repository and counts listing calls.
type countingQuerier struct {
	*Repository
	listCalls int
}

func (q *countingQuerier) AllPosts(ctx context.Context) ([]Post, error) {
	q.listCalls++
	return q.Repository.AllPosts(ctx)
}

func TestCacheMemoizesWithinTTL(t *testing.T) {
	s := newMemStore()
	s.add("a", frontmatter("A", "2024-01-01", "x"))
	src := &countingQuerier{Repository: newTestRepo(s)}
	c := NewCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.AllPosts(ctx); err != nil {
			t.Fatalf("AllPosts failed: %v", err)
		}
	}
	tags, err := c.AllTags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	years, err := c.ArchiveYears(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if src.listCalls != 1 {
		t.Errorf("source listed %d times, want 1", src.listCalls)
	}
	if !reflect.DeepEqual(tags, []string{"x"}) || !reflect.DeepEqual(years, []int{2024}) {
		t.Errorf("tags = %v years = %v", tags, years)
	}

	s.add("b", frontmatter("B", "2025-01-01"))
	posts, _ := c.AllPosts(ctx)
	if len(posts) != 1 {
		t.Errorf("cached listing changed before invalidation: %d posts", len(posts))
	}
	c.Invalidate()
	posts, _ = c.AllPosts(ctx)
	if len(posts) != 2 || src.listCalls != 2 {
		t.Errorf("after Invalidate got %d posts, %d listings", len(posts), src.listCalls)
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	s := newMemStore()
	s.add("a", frontmatter("A", "2024-01-01"))
	src := &countingQuerier{Repository: newTestRepo(s)}
	c := NewCache(src, 0)

	for i := 0; i < 3; i++ {
		if _, err := c.AllPosts(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if src.listCalls != 3 {
		t.Errorf("source listed %d times, want 3", src.listCalls)
	}
}

func TestCachePostBySlug(t *testing.T) {
	s := newMemStore()
	s.add("a", frontmatter("A", "2024-01-01"))
	s.add("broken", "---\nunterminated")
	c := NewCache(newTestRepo(s), time.Minute)
	ctx := context.Background()

	p, err := c.PostBySlug(ctx, "a")
	if err != nil || p.Title != "A" {
		t.Fatalf("PostBySlug(a) = %+v, %v", p, err)
	}
	if _, err := c.PostBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PostBySlug(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := c.PostBySlug(ctx, "broken"); !errors.Is(err, ErrParse) {
		t.Errorf("PostBySlug(broken) error = %v, want ErrParse", err)
	}
}

func TestCacheDoesNotKeepErrors(t *testing.T) {
	s := newMemStore()
	s.listErr = ErrStorageUnavailable
	c := NewCache(newTestRepo(s), time.Minute)
	if _, err := c.AllPosts(context.Background()); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("AllPosts error = %v, want ErrStorageUnavailable", err)
	}
	s.listErr = nil
	s.add("a", frontmatter("A", "2024-01-01"))
	posts, err := c.AllPosts(context.Background())
	if err != nil || len(posts) != 1 {
		t.Errorf("AllPosts after recovery = %d posts, %v", len(posts), err)
	}
}
