package views

import "github.com/eringen/inkpost/content"

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, optional
}

// Page is the data every full page shares: site settings, head metadata and
// the sidebar.
type Page struct {
	Site   SiteConfig
	Meta   PageMeta
	Recent []content.Post
	Tags   []TagCount
}

// TagCount is one entry of the tag index.
type TagCount struct {
	Tag   string
	Slug  string
	Count int
}
