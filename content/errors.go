package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a post id has no backing content.
	ErrNotFound = errors.New("content: post not found")

	// ErrStorageUnavailable is returned when the content root cannot be read at all.
	ErrStorageUnavailable = errors.New("content: storage unavailable")

	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = errors.New("content: malformed frontmatter")
)

// ParseError reports a malformed frontmatter block for a single post.
type ParseError struct {
	Slug   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "content: parse"
	if e.Slug != "" {
		msg += " " + e.Slug
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
