package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IndexFile is the Markdown file every post directory must contain.
const IndexFile = "index.md"

// Store enumerates post ids and reads their raw content.
type Store interface {
	// ListPostIDs returns the ids of all posts in a deterministic order.
	ListPostIDs(ctx context.Context) ([]string, error)
	// ReadRaw returns the raw index file of a post, or ErrNotFound.
	ReadRaw(ctx context.Context, id string) (string, error)
}

// DirStore reads posts from a directory laid out as <root>/<id>/index.md.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at root. The directory is not
// touched until the first call.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the content root path.
func (s *DirStore) Root() string {
	return s.root
}

// ListPostIDs returns the names of subdirectories of the root that contain an
// index file, sorted by name.
func (s *DirStore) ListPostIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, storageErr("read "+s.root, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(s.root, e.Name(), IndexFile))
		if err != nil || info.IsDir() {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadRaw returns the index file of the post id.
func (s *DirStore) ReadRaw(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ValidID(id) {
		return "", ErrNotFound
	}
	b, err := os.ReadFile(filepath.Join(s.root, id, IndexFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(b), nil
}

// ValidID reports whether id can name a post directory without escaping the
// content root.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." || strings.HasPrefix(id, ".") {
		return false
	}
	return !strings.ContainsAny(id, `/\`+"\x00")
}
