package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func writePost(t *testing.T, root, slug, raw string) {
	t.Helper()
	dir := filepath.Join(root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte(raw), 0o644); err != nil {
		t.Fatalf("write %s: %v", slug, err)
	}
}

func TestDirStoreListPostIDs(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "b-post", "b")
	writePost(t, root, "a-post", "a")
	if err := os.MkdirAll(filepath.Join(root, "no-index"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "dir-index", IndexFile), 0o755); err != nil {
		t.Fatal(err)
	}
	writePost(t, root, ".hidden", "h")
	if err := os.WriteFile(filepath.Join(root, "stray.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := NewDirStore(root).ListPostIDs(context.Background())
	if err != nil {
		t.Fatalf("ListPostIDs failed: %v", err)
	}
	if want := []string{"a-post", "b-post"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListPostIDs = %v, want %v", ids, want)
	}
}

func TestDirStoreMissingRoot(t *testing.T) {
	s := NewDirStore(filepath.Join(t.TempDir(), "missing"))
	_, err := s.ListPostIDs(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("ListPostIDs error = %v, want ErrStorageUnavailable", err)
	}
}

func TestDirStoreReadRaw(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "hello", "---\ntitle: Hello\n---\nbody")
	s := NewDirStore(root)

	got, err := s.ReadRaw(context.Background(), "hello")
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if got != "---\ntitle: Hello\n---\nbody" {
		t.Errorf("ReadRaw = %q", got)
	}

	for _, id := range []string{"missing", "", "..", "../hello", "hello/../hello", `a\b`, ".hidden"} {
		if _, err := s.ReadRaw(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("ReadRaw(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestEnsureSampleContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content", "posts")
	s := NewDirStore(root)
	if err := s.EnsureSampleContent(); err != nil {
		t.Fatalf("EnsureSampleContent failed: %v", err)
	}

	ids, err := s.ListPostIDs(context.Background())
	if err != nil {
		t.Fatalf("ListPostIDs failed: %v", err)
	}
	samples, err := fs.ReadDir(Samples, "samples")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) == 0 || len(ids) != len(samples) {
		t.Fatalf("got %d posts, want %d samples", len(ids), len(samples))
	}
	for _, id := range ids {
		raw, err := s.ReadRaw(context.Background(), id)
		if err != nil {
			t.Fatalf("ReadRaw(%s) failed: %v", id, err)
		}
		if _, err := ParseDocument(raw); err != nil {
			t.Errorf("sample %s does not parse: %v", id, err)
		}
	}
}

func TestEnsureSampleContentSkipsExistingRoot(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "mine", "my post")
	s := NewDirStore(root)
	if err := s.EnsureSampleContent(); err != nil {
		t.Fatalf("EnsureSampleContent failed: %v", err)
	}
	ids, err := s.ListPostIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"mine"}) {
		t.Errorf("ListPostIDs = %v, want only the existing post", ids)
	}
}

func TestEnsureSampleContentConcurrent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "posts")
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- NewDirStore(root).EnsureSampleContent()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent EnsureSampleContent failed: %v", err)
		}
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root not created: %v", err)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"hello-world", true},
		{"Post_2024", true},
		{"", false},
		{".", false},
		{"..", false},
		{".git", false},
		{"a/b", false},
		{`a\b`, false},
		{"nul\x00byte", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
