// Package markdown converts post bodies to HTML with goldmark and exposes
// the result as a templ component.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown source to HTML. Raw HTML in the source is
// passed through, so only author-controlled content should be rendered.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer configured for CommonMark plus GitHub extensions.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&mediaTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render returns the HTML for src.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// HTML returns a templ.Component that writes already rendered HTML verbatim.
func HTML(rendered string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rendered)
		return err
	})
}

// mediaTransformer lazy-loads every image after the first and opens
// external links in a new tab.
type mediaTransformer struct{}

func (t *mediaTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	images := 0
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Image:
			images++
			if images > 1 {
				v.SetAttributeString("loading", []byte("lazy"))
				v.SetAttributeString("decoding", []byte("async"))
			}
		case *ast.Link:
			if IsExternal(string(v.Destination)) {
				openInNewTab(v)
			}
		case *ast.AutoLink:
			if v.AutoLinkType == ast.AutoLinkURL && IsExternal(string(v.URL(source))) {
				openInNewTab(v)
			}
		}
		return ast.WalkContinue, nil
	})
}

func openInNewTab(n ast.Node) {
	n.SetAttributeString("target", []byte("_blank"))
	n.SetAttributeString("rel", []byte("noopener noreferrer"))
}

// IsExternal reports whether dest is an absolute http(s) URL.
func IsExternal(dest string) bool {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
