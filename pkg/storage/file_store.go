package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileStore saves photos to disk under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Put writes a photo. The content type is sniffed again on Get.
func (f *FileStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	target, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.basePath, ".upload-*")
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("store file: %w", err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	target, err := f.path(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), http.DetectContentType(data), nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	target, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Clear empties the base directory and keeps the directory itself.
func (f *FileStore) Clear(_ context.Context) error {
	entries, err := os.ReadDir(f.basePath)
	if os.IsNotExist(err) {
		return os.MkdirAll(f.basePath, 0o755)
	}
	if err != nil {
		return fmt.Errorf("list storage dir: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(f.basePath, e.Name())); err != nil {
			return fmt.Errorf("clear storage dir: %w", err)
		}
	}
	return nil
}

func (f *FileStore) path(key string) (string, error) {
	name := safeFilename(key)
	if name == "" {
		return "", fmt.Errorf("invalid photo key %q", key)
	}
	return filepath.Join(f.basePath, name), nil
}

func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(os.PathSeparator) || strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}
