package inkpost

import "embed"

// EmbeddedAssets contains static assets shipped with inkpost: style.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
