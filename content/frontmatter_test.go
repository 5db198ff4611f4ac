package content

import (
	"errors"
	"testing"
)

func TestParseDocument(t *testing.T) {
	raw := "---\ntitle: \"Hello\"\ndate: 2024-01-15\ntags: [\"a\", \"b\"]\nseries: intro\n---\n\n# Body\n"
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Body != "\n# Body\n" {
		t.Errorf("Body = %q, want %q", doc.Body, "\n# Body\n")
	}
	if doc.Meta["title"] != "Hello" {
		t.Errorf("title = %v, want Hello", doc.Meta["title"])
	}
	if doc.Meta["series"] != "intro" {
		t.Errorf("unknown key series = %v, want it preserved", doc.Meta["series"])
	}
	tags, ok := doc.Meta["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tags = %#v, want [a b]", doc.Meta["tags"])
	}
}

func TestParseDocumentBlockSequence(t *testing.T) {
	raw := "---\ntags:\n  - go\n  - web\n---\nbody"
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if got := ParseMetadata(doc.Meta).Tags; len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", got)
	}
	if doc.Body != "body" {
		t.Errorf("Body = %q, want %q", doc.Body, "body")
	}
}

func TestParseDocumentWithoutFrontmatter(t *testing.T) {
	tests := []string{
		"",
		"# Just markdown\n\ntext",
		"\n---\ntitle: x\n---\n",
		"----\nnot a fence",
	}
	for _, raw := range tests {
		doc, err := ParseDocument(raw)
		if err != nil {
			t.Fatalf("ParseDocument(%q) failed: %v", raw, err)
		}
		if doc.Body != raw {
			t.Errorf("Body = %q, want %q", doc.Body, raw)
		}
		if len(doc.Meta) != 0 {
			t.Errorf("Meta = %v, want empty", doc.Meta)
		}
	}
}

func TestParseDocumentToleratesCRLFAndBOM(t *testing.T) {
	raw := "\ufeff---\r\ntitle: Windows\r\n---\r\nbody\r\n"
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Meta["title"] != "Windows" {
		t.Errorf("title = %v, want Windows", doc.Meta["title"])
	}
	if doc.Body != "body\r\n" {
		t.Errorf("Body = %q, want %q", doc.Body, "body\r\n")
	}
}

func TestParseDocumentEmptyBlock(t *testing.T) {
	doc, err := ParseDocument("---\n---\ntext")
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Meta) != 0 || doc.Body != "text" {
		t.Errorf("got Meta=%v Body=%q, want empty meta and %q", doc.Meta, doc.Body, "text")
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unterminated", "---\ntitle: x\n\n# body without closing fence"},
		{"only opening fence", "---"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\nbody"},
		{"not a mapping", "---\n- a\n- b\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not match ErrParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *ParseError", err)
			}
		})
	}
}
