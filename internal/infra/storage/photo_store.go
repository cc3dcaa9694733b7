// Package storage implements blob storage for round and profile photos.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers: GCS in production, the local filesystem in development.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"fairway/config"
	"fairway/internal/domain/service"
)

// uploadChunkSize is how often upload progress is reported.
const uploadChunkSize = 256 * 1024

type photoStore struct {
	bucket    *blob.Bucket
	bucketURL string
	logger    *slog.Logger
}

// PhotoStoreParams holds dependencies for the photo store, injected by Fx.
type PhotoStoreParams struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPhotoStore opens the configured bucket and registers its teardown.
func NewPhotoStore(params PhotoStoreParams) (service.PhotoStore, error) {
	cfg := params.Config
	if cfg.Storage == nil || cfg.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be provided")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.Storage.BucketURL)
	}

	store := &photoStore{
		bucket:    bucket,
		bucketURL: cfg.Storage.BucketURL,
		logger:    params.Logger,
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// Upload streams the blob to storage in chunks, reporting progress after each
// chunk, and returns the key-based URL of the stored object.
func (s *photoStore) Upload(ctx context.Context, key string, r io.Reader, size int64, progress service.UploadProgress) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	written, copyErr := copyWithProgress(w, r, size, progress)
	if closeErr := w.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		// Best-effort cleanup of the partial object.
		_ = s.bucket.Delete(ctx, key)

		return "", errors.Wrapf(copyErr, "failed to upload %s", key)
	}

	s.logger.Info("Photo uploaded", slog.String("key", key), slog.Int64("bytes", written))

	return s.url(key), nil
}

// DeletePrefix removes every blob under the given key prefix.
func (s *photoStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "failed to list blobs under %s", prefix)
		}

		if err := s.bucket.Delete(ctx, obj.Key); err != nil {
			return errors.Wrapf(err, "failed to delete blob %s", obj.Key)
		}
	}

	return nil
}

// Close releases the underlying bucket.
func (s *photoStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *photoStore) url(key string) string {
	return strings.TrimRight(s.bucketURL, "/") + "/" + key
}

func copyWithProgress(w io.Writer, r io.Reader, total int64, progress service.UploadProgress) (int64, error) {
	buf := make([]byte, uploadChunkSize)

	var written int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			if progress != nil {
				progress(written, total)
			}
			if writeErr != nil {
				return written, writeErr
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
