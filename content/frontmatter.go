package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Document is a content file split into its frontmatter and Markdown body.
type Document struct {
	Meta map[string]any
	Body string
}

// ParseDocument splits raw into a YAML frontmatter mapping and the body that
// follows the closing fence. Input without a leading fence is all body.
func ParseDocument(raw string) (Document, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")

	first, rest, _ := cutLine(raw)
	if !isFence(first) {
		return Document{Meta: map[string]any{}, Body: raw}, nil
	}

	var block strings.Builder
	for {
		line, next, more := cutLine(rest)
		if isFence(line) {
			doc := Document{Meta: map[string]any{}, Body: next}
			if err := decodeMeta(block.String(), doc.Meta); err != nil {
				return Document{}, err
			}
			return doc, nil
		}
		if !more {
			return Document{}, &ParseError{Reason: "unterminated frontmatter block"}
		}
		block.WriteString(line)
		block.WriteByte('\n')
		rest = next
	}
}

func decodeMeta(block string, into map[string]any) error {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return &ParseError{Reason: "invalid yaml", Err: err}
	}
	if len(node.Content) == 0 {
		return nil
	}
	if node.Content[0].Kind != yaml.MappingNode {
		return &ParseError{Reason: "frontmatter is not a mapping"}
	}
	if err := node.Content[0].Decode(&into); err != nil {
		return &ParseError{Reason: "invalid yaml", Err: err}
	}
	return nil
}

// cutLine returns the first line of s without its terminator and the
// remainder. more is false when s had no newline.
func cutLine(s string) (line, rest string, more bool) {
	line, rest, more = strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r"), rest, more
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t") == fence
}
