package content

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultTitle  = "Untitled"
	DefaultAuthor = "Anonymous"

	// WordsPerMinute is the reading speed used for ReadingTime.
	WordsPerMinute = 200
	excerptLength  = 160
	excerptSuffix  = "..."
)

// Post is a fully derived blog post. Content holds rendered HTML from
// author-trusted Markdown and is not sanitized.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Author      string   `json:"author"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
	ReadingTime int      `json:"readingTime"`
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Year returns the calendar year of the post date, or false if the date
// does not parse.
func (p Post) Year() (int, bool) {
	t, ok := ParseDate(p.Date)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// Metadata is the typed view of a frontmatter mapping. Empty fields mean the
// key was absent or blank.
type Metadata struct {
	Title   string
	Date    string
	Author  string
	Excerpt string
	Tags    []string
	Image   string
}

// ParseMetadata coerces the recognised frontmatter keys into Metadata.
// Unknown keys are ignored.
func ParseMetadata(meta map[string]any) Metadata {
	return Metadata{
		Title:   scalarString(meta["title"]),
		Date:    dateString(meta["date"]),
		Author:  scalarString(meta["author"]),
		Excerpt: scalarString(meta["excerpt"]),
		Tags:    tagList(meta["tags"]),
		Image:   scalarString(meta["image"]),
	}
}

// Derive builds a Post from a parsed document and its rendered HTML,
// applying defaults for every missing field. now is used when the date is
// absent.
func Derive(slug string, doc Document, html string, now time.Time) Post {
	md := ParseMetadata(doc.Meta)

	p := Post{
		Slug:        slug,
		Title:       md.Title,
		Date:        md.Date,
		Author:      md.Author,
		Excerpt:     md.Excerpt,
		Content:     html,
		Tags:        md.Tags,
		Image:       md.Image,
		ReadingTime: ReadingTime(doc.Body),
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Date == "" {
		p.Date = now.UTC().Format(time.RFC3339)
	}
	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	if p.Excerpt == "" {
		p.Excerpt = DefaultExcerpt(doc.Body)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// ReadingTime estimates minutes to read body at WordsPerMinute. Any post,
// even an empty one, takes at least a minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// DefaultExcerpt returns the first 160 characters of the raw body followed by
// "...". The suffix is added even when the body is shorter.
func DefaultExcerpt(body string) string {
	if utf8.RuneCountInString(body) <= excerptLength {
		return body + excerptSuffix
	}
	n := 0
	for i := range body {
		if n == excerptLength {
			return body[:i] + excerptSuffix
		}
		n++
	}
	return body + excerptSuffix
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses the ISO-8601 forms accepted in frontmatter.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return formatDate(x)
	case []any, map[string]any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func dateString(v any) string {
	if t, ok := v.(time.Time); ok {
		return formatDate(t)
	}
	return scalarString(v)
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func tagList(v any) []string {
	var raw []string
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			raw = append(raw, scalarString(item))
		}
	case []string:
		raw = x
	case string:
		raw = strings.Split(x, ",")
	default:
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
