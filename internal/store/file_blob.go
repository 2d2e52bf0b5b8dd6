package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

// fileBlobStorage is the filesystem implementation of [BlobStorage].
// Every bucket is a sub-directory of the root; every attachment is a single
// file named by its id. Files are written to a temporary name first and
// renamed into place, so readers never observe partial content.
type fileBlobStorage struct {
	root   string
	logger *logger.Logger
}

// NewFileBlobStorage creates the bucket directories under root and returns
// a [BlobStorage] serving them. Failing to create them is fatal for startup.
func NewFileBlobStorage(root string, logger *logger.Logger) (BlobStorage, error) {
	logger.Debug().Str("root", root).Msg("creating file blob storage")

	for _, bucket := range models.LookupOrder {
		if err := os.MkdirAll(filepath.Join(root, string(bucket)), 0o750); err != nil {
			return nil, fmt.Errorf("%w: creating bucket %s: %w", ErrBlobIO, bucket, err)
		}
	}

	return &fileBlobStorage{root: root, logger: logger}, nil
}

func (f *fileBlobStorage) path(bucket models.Bucket, id string) (string, error) {
	if !bucket.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
	}
	if id == "" || filepath.Base(id) != id || id == "." || id == ".." {
		return "", fmt.Errorf("%w: invalid blob id %q", ErrAttachmentNotFound, id)
	}

	return filepath.Join(f.root, string(bucket), id), nil
}

func (f *fileBlobStorage) Put(ctx context.Context, bucket models.Bucket, id string, r io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	target, err := f.path(bucket, id)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+id+".*.part")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	written, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if err != nil {
		_ = tmp.Close()
		cleanup()
		log.Err(err).Str("func", "fileBlobStorage.Put").Str("blob_id", id).Msg("failed to write blob")
		return 0, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	if err = tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	if err = os.Rename(tmpName, target); err != nil {
		cleanup()
		return 0, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	return written, nil
}

func (f *fileBlobStorage) Open(_ context.Context, bucket models.Bucket, id string) (io.ReadCloser, error) {
	target, err := f.path(bucket, id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	return file, nil
}

func (f *fileBlobStorage) Remove(_ context.Context, bucket models.Bucket, id string) error {
	target, err := f.path(bucket, id)
	if err != nil {
		return err
	}

	err = os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrAttachmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	return nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
