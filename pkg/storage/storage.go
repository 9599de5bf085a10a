// Package storage keeps profile photos outside the key-value store.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get for an unknown key.
var ErrNotFound = errors.New("photo not found")

// PhotoStore saves opaque photo blobs by key.
type PhotoStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get returns the photo and its content type. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Delete is a no-op for an unknown key.
	Delete(ctx context.Context, key string) error
	// Clear removes every photo owned by the store.
	Clear(ctx context.Context) error
}
