package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := store.Put(ctx, "avatar.png", strings.NewReader(string(pngHeader)), int64(len(pngHeader)), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, contentType, err := store.Get(ctx, "avatar.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != string(pngHeader) {
		t.Fatalf("unexpected content %q", data)
	}
	if contentType != "image/png" {
		t.Fatalf("content type = %q", contentType)
	}

	if err := store.Delete(ctx, "avatar.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "avatar.png"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, _, err := store.Get(ctx, "avatar.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, key := range []string{"a.jpg", "b.jpg"} {
		if err := store.Put(ctx, key, strings.NewReader("x"), 1, ""); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries", len(entries))
	}
	if err := store.Put(ctx, "c.jpg", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("store must stay usable after clear: %v", err)
	}
}

func TestFileStoreRejectsUnsafeKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, key := range []string{"", "..", "."} {
		if err := store.Put(context.Background(), key, strings.NewReader("x"), 1, ""); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
	if err := store.Put(context.Background(), "../escape.png", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(store.basePath), "escape.png")); !os.IsNotExist(err) {
		t.Fatalf("key escaped the base directory")
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
