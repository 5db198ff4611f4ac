package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Samples holds the built-in posts written into an empty installation.
//
//go:embed all:samples
var Samples embed.FS

// EnsureSampleContent creates the content root and fills it with the
// built-in sample posts. It does nothing when the root already exists.
// Concurrent callers may race; whatever already exists is left alone.
func (s *DirStore) EnsureSampleContent() error {
	if _, err := os.Stat(s.root); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return storageErr("stat "+s.root, err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return storageErr("create "+s.root, err)
	}

	entries, err := fs.ReadDir(Samples, "samples")
	if err != nil {
		return fmt.Errorf("read samples: %w", err)
	}
	written := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ok, err := s.writeSample(e.Name())
		if err != nil {
			return err
		}
		if ok {
			written++
		}
	}
	log.Info().Str("root", s.root).Int("posts", written).Msg("created sample content")
	return nil
}

func (s *DirStore) writeSample(slug string) (bool, error) {
	body, err := Samples.ReadFile(path.Join("samples", slug, IndexFile))
	if err != nil {
		return false, fmt.Errorf("read sample %s: %w", slug, err)
	}
	dir := filepath.Join(s.root, slug)
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, IndexFile), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create sample %s: %w", slug, err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		return false, fmt.Errorf("write sample %s: %w", slug, err)
	}
	return true, f.Close()
}
