package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := New().Render(src)
	if err != nil {
		t.Fatalf("Render(%q) failed: %v", src, err)
	}
	return out
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"heading", "# Hello World", []string{`<h1 id="hello-world">Hello World</h1>`}},
		{"subheading", "## Part Two", []string{`<h2 id="part-two">Part Two</h2>`}},
		{"paragraph", "just text", []string{"<p>just text</p>"}},
		{"bold", "**bold**", []string{"<strong>bold</strong>"}},
		{"italic", "_italic_", []string{"<em>italic</em>"}},
		{"unordered list", "- one\n- two", []string{"<ul>", "<li>one</li>", "<li>two</li>", "</ul>"}},
		{"ordered list", "1. first\n2. second", []string{"<ol>", "<li>first</li>", "<li>second</li>", "</ol>"}},
		{"blockquote", "> quoted", []string{"<blockquote>", "<p>quoted</p>", "</blockquote>"}},
		{"internal link", "[home](/)", []string{`<a href="/">home</a>`}},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<th>a</th>", "<td>2</td>"}},
		{"strikethrough", "~~gone~~", []string{"<del>gone</del>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.input)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestRenderFencedCodeIsLiteral(t *testing.T) {
	got := render(t, "```go\nif a < b && c {\n\t<script>alert(1)</script>\n}\n```")
	if !strings.Contains(got, `<code class="language-go">`) {
		t.Errorf("missing language class: %q", got)
	}
	if !strings.Contains(got, "if a &lt; b &amp;&amp; c {") {
		t.Errorf("code not escaped: %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("code block content rendered as HTML: %q", got)
	}
}

func TestRenderPassesRawHTML(t *testing.T) {
	got := render(t, `<div class="note">trusted</div>`)
	if !strings.Contains(got, `<div class="note">trusted</div>`) {
		t.Errorf("raw HTML was not passed through: %q", got)
	}
}

func TestRenderImagesLazyAfterFirst(t *testing.T) {
	got := render(t, "![one](/a.png)\n\n![two](/b.png)")
	first, second, ok := strings.Cut(got, "</p>")
	if !ok {
		t.Fatalf("expected two paragraphs: %q", got)
	}
	if strings.Contains(first, `loading="lazy"`) {
		t.Errorf("first image should load eagerly: %q", first)
	}
	if strings.Contains(first, `decoding="async"`) {
		t.Errorf("first image should decode synchronously: %q", first)
	}
	if !strings.Contains(second, `loading="lazy"`) || !strings.Contains(second, `decoding="async"`) {
		t.Errorf("second image should be lazy and async: %q", second)
	}
}

func TestRenderExternalLinks(t *testing.T) {
	got := render(t, "[go](https://go.dev) and [local](/about/)")
	if !strings.Contains(got, `rel="noopener noreferrer"`) || !strings.Contains(got, `target="_blank"`) {
		t.Errorf("external link missing attributes: %q", got)
	}
	if !strings.Contains(got, `<a href="/about/">local</a>`) {
		t.Errorf("local link should be untouched: %q", got)
	}
}

func TestRenderExternalAutoLinks(t *testing.T) {
	got := render(t, "see <https://go.dev> or https://pkg.go.dev and <me@example.com>")
	if n := strings.Count(got, `target="_blank"`); n != 2 {
		t.Errorf("got %d links opening a new tab, want 2: %q", n, got)
	}
	if !strings.Contains(got, `<a href="mailto:me@example.com">me@example.com</a>`) {
		t.Errorf("email autolink should be untouched: %q", got)
	}
}

func TestIsExternal(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com", true},
		{"HTTP://example.com/x", true},
		{"/blog/post/", false},
		{"#top", false},
		{"mailto:me@example.com", false},
		{"//example.com", false},
		{"relative/path", false},
	}
	for _, tt := range tests {
		if got := IsExternal(tt.input); got != tt.want {
			t.Errorf("IsExternal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHTMLComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML("<p>hi</p>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "<p>hi</p>" {
		t.Errorf("HTML() wrote %q, want %q", buf.String(), "<p>hi</p>")
	}
}
