package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded files and returns a URL the stored object
// can be fetched from.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
