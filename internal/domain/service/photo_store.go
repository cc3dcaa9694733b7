package service

import (
	"context"
	"io"
)

// UploadProgress reports incremental upload progress. total is the declared
// size of the blob, or 0 when unknown.
type UploadProgress func(written, total int64)

// PhotoStore abstracts the blob storage used for round and profile photos.
type PhotoStore interface {
	// Upload streams the blob to storage under key, invoking progress as
	// bytes are written, and returns a retrievable URL.
	Upload(ctx context.Context, key string, r io.Reader, size int64, progress UploadProgress) (string, error)

	// DeletePrefix removes every blob under the given key prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Close releases the underlying bucket.
	Close() error
}
