package content

import (
	"context"
	"strings"
)

// Querier is the read API consumed by pages, feeds and the JSON endpoints.
// Both Repository and Cache implement it.
type Querier interface {
	AllPosts(ctx context.Context) ([]Post, error)
	PostBySlug(ctx context.Context, slug string) (Post, error)
	AllTags(ctx context.Context) ([]string, error)
	ArchiveYears(ctx context.Context) ([]int, error)
}

// Search returns the posts whose title, excerpt or any tag contains query,
// ignoring case. An empty query matches nothing.
func Search(posts []Post, query string) []Post {
	results := []Post{}
	q := strings.ToLower(query)
	if q == "" {
		return results
	}
	for _, p := range posts {
		if matches(p, q) {
			results = append(results, p)
		}
	}
	return results
}

func matches(p Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Excerpt), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// TagSlug returns the URL form of a tag: lower case with whitespace runs
// replaced by dashes.
func TagSlug(tag string) string {
	return strings.Join(strings.Fields(strings.ToLower(tag)), "-")
}

// FilterByTag returns the posts carrying a tag whose slug equals slug.
func FilterByTag(posts []Post, slug string) []Post {
	want := TagSlug(strings.ReplaceAll(slug, "-", " "))
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if TagSlug(t) == want {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// RelatedPosts returns up to limit posts other than current that share at
// least one tag with it, in the order of posts.
func RelatedPosts(current Post, posts []Post, limit int) []Post {
	tagSet := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		tagSet[t] = struct{}{}
	}
	var related []Post
	for _, p := range posts {
		if len(related) == limit {
			break
		}
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[t]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// YearGroup is one year of the archive.
type YearGroup struct {
	Year  int
	Posts []Post
}

// GroupByYear groups date-sorted posts by year, newest year first. Posts
// whose date has no year are left out.
func GroupByYear(posts []Post) []YearGroup {
	byYear := make(map[int][]Post)
	for _, p := range posts {
		if year, ok := p.Year(); ok {
			byYear[year] = append(byYear[year], p)
		}
	}
	groups := make([]YearGroup, 0, len(byYear))
	for _, year := range CollectYears(posts) {
		groups = append(groups, YearGroup{Year: year, Posts: byYear[year]})
	}
	return groups
}
