package content

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 serves objects from a map and pages listings pageSize keys at a time.
type fakeS3 struct {
	objects  map[string]string
	pageSize int
	listErr  error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		for i, k := range keys {
			if k == tok {
				start = i
				break
			}
		}
	}
	end := start + f.pageSize
	out := &s3.ListObjectsV2Output{}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end])
	} else {
		end = len(keys)
	}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		pageSize: 2,
		objects: map[string]string{
			"posts/zeta/index.md":        frontmatter("Zeta", "2024-01-01"),
			"posts/alpha/index.md":       frontmatter("Alpha", "2024-02-01"),
			"posts/beta/index.md":        frontmatter("Beta", "2023-02-01"),
			"posts/beta/cover.png":       "png",
			"posts/nested/deep/index.md": "ignored",
			"posts/readme.md":            "ignored",
			"drafts/gamma/index.md":      frontmatter("Gamma", "2024-03-01"),
		},
	}
}

func TestS3StoreListPostIDs(t *testing.T) {
	s := NewS3Store(newFakeS3(), "bucket", "posts")
	ids, err := s.ListPostIDs(context.Background())
	if err != nil {
		t.Fatalf("ListPostIDs failed: %v", err)
	}
	if want := []string{"alpha", "beta", "zeta"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListPostIDs = %v, want %v", ids, want)
	}
}

func TestS3StoreListError(t *testing.T) {
	f := newFakeS3()
	f.listErr = errors.New("connection refused")
	_, err := NewS3Store(f, "bucket", "posts/").ListPostIDs(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("ListPostIDs error = %v, want ErrStorageUnavailable", err)
	}
}

func TestS3StoreReadRaw(t *testing.T) {
	s := NewS3Store(newFakeS3(), "bucket", "posts/")
	raw, err := s.ReadRaw(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if !strings.Contains(raw, `title: "Alpha"`) {
		t.Errorf("ReadRaw = %q", raw)
	}
	for _, id := range []string{"missing", "../drafts/gamma", ""} {
		if _, err := s.ReadRaw(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("ReadRaw(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestRepositoryOverS3Store(t *testing.T) {
	repo := newTestRepo(NewS3Store(newFakeS3(), "bucket", "posts/"))
	posts, err := repo.AllPosts(context.Background())
	if err != nil {
		t.Fatalf("AllPosts failed: %v", err)
	}
	if got := slugs(posts); !reflect.DeepEqual(got, []string{"alpha", "zeta", "beta"}) {
		t.Errorf("AllPosts = %v", got)
	}
}
