package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/debemdeboas/chronicler/internal/model"
	"github.com/debemdeboas/chronicler/internal/util/compression"
)

func archiveSample(t *testing.T, root string, now time.Time, title string, attachments ...model.Attachment) string {
	t.Helper()
	post := model.NewPost(model.PostFormData{
		Title:       title,
		Content:     "Body of " + title,
		Attachments: attachments,
		Categories:  model.Categories{"go"},
		Platforms:   []model.Platform{model.LinkedIn},
	}, map[model.Platform]string{model.LinkedIn: "https://linkedin.com/p/" + title})

	folder, err := NewWriterWithClock(func() time.Time { return now }).Archive(context.Background(), post, NewOSDirectory(root))
	if err != nil {
		t.Fatalf("Expected no error archiving, got %v", err)
	}
	return folder
}

func TestLibraryScan(t *testing.T) {
	root := t.TempDir()
	older := archiveSample(t, root, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), "Older")
	newer := archiveSample(t, root, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), "Newer",
		model.Attachment{Name: "notes.txt", MediaType: "text/plain", Data: []byte("n")})

	if err := os.Mkdir(filepath.Join(root, "not-a-post"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(root)
	if err := lib.Init(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	posts := lib.List()
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].Folder != newer || posts[1].Folder != older {
		t.Errorf("Expected newest first, got %s then %s", posts[0].Folder, posts[1].Folder)
	}

	post, err := lib.Get(newer)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if post.Slug != "newer" {
		t.Errorf("Expected slug 'newer', got %q", post.Slug)
	}
	if !reflect.DeepEqual(post.Categories, []string{"go"}) {
		t.Errorf("Expected categories [go], got %v", post.Categories)
	}
	if len(post.Platforms) != 1 || post.Platforms[0].Name != "LinkedIn" || post.Platforms[0].URL != "https://linkedin.com/p/Newer" {
		t.Errorf("Unexpected platforms %+v", post.Platforms)
	}
	if !bytes.HasPrefix(post.Body, []byte("Body of Newer")) {
		t.Errorf("Expected body without front matter, got %q", post.Body)
	}
	if !reflect.DeepEqual(post.Files, []string{"notes.txt"}) {
		t.Errorf("Expected files [notes.txt], got %v", post.Files)
	}

	if _, err := lib.Get("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestLibraryRefreshNotifies(t *testing.T) {
	root := t.TempDir()
	first := archiveSample(t, root, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), "First")

	lib := NewLibrary(root)
	if err := lib.Init(); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var notified []string
	lib.SetReloadNotifier(func(folder string) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, folder)
	})

	if err := lib.Refresh(); err != nil {
		t.Fatal(err)
	}
	if len(notified) != 0 {
		t.Errorf("Expected no notifications without changes, got %v", notified)
	}

	second := archiveSample(t, root, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), "Second")
	if err := os.WriteFile(filepath.Join(root, first, "post.md"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := lib.Refresh(); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(notified) != 2 {
		t.Fatalf("Expected 2 notifications, got %v", notified)
	}
	seen := map[string]bool{notified[0]: true, notified[1]: true}
	if !seen[first] || !seen[second] {
		t.Errorf("Expected notifications for %s and %s, got %v", first, second, notified)
	}

	edited, _ := lib.Get(first)
	if string(edited.Body) != "edited" {
		t.Errorf("Expected raw body for post without front matter, got %q", edited.Body)
	}
}

func TestLibraryWatchStops(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		lib.Watch(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Expected Watch to return after cancel")
	}
}

func TestFolderSlug(t *testing.T) {
	testCases := map[string]string{
		"2024-05-01-hello-world": "hello-world",
		"2024-05-01-":            "",
		"hello":                  "hello",
		"2024-13-01-bad-date":    "2024-13-01-bad-date",
	}
	for folder, expected := range testCases {
		if got := folderSlug(folder); got != expected {
			t.Errorf("Expected slug %q for %q, got %q", expected, folder, got)
		}
	}
}

func TestWriteBundle(t *testing.T) {
	root := t.TempDir()
	folder := archiveSample(t, root, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), "Bundled",
		model.Attachment{Name: "cat.png", MediaType: "image/png", Data: []byte("png")})

	lib := NewLibrary(root)
	if err := lib.Init(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"zstd", "gzip"} {
		t.Run(name, func(t *testing.T) {
			c, err := compression.ByName(name)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := lib.WriteBundle(&buf, folder, c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			r, err := c.NewReader(&buf)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()

			var names []string
			tr := tar.NewReader(r)
			for {
				hdr, err := tr.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("Expected valid tarball, got %v", err)
				}
				names = append(names, hdr.Name)
			}

			expected := []string{folder + "/post.md", folder + "/cat.png"}
			if !reflect.DeepEqual(names, expected) {
				t.Errorf("Expected entries %v, got %v", expected, names)
			}
		})
	}

	if err := lib.WriteBundle(io.Discard, "missing", compression.GzipCompressor{}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}

	if got := BundleName(folder, compression.ZstdCompressor{}); got != folder+".tar.zst" {
		t.Errorf("Unexpected bundle name %q", got)
	}
}
