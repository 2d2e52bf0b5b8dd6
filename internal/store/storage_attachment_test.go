package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIDs struct{ id string }

func (f fixedIDs) Generate() string { return f.id }

// failingAttachmentRepository wraps a real repository and fails selected calls.
type failingAttachmentRepository struct {
	AttachmentRepository
	saveErr   error
	deleteErr error
}

func (f *failingAttachmentRepository) SaveAttachment(ctx context.Context, attachment models.Attachment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.AttachmentRepository.SaveAttachment(ctx, attachment)
}

func (f *failingAttachmentRepository) DeleteAttachment(ctx context.Context, id string, bucket models.Bucket) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.AttachmentRepository.DeleteAttachment(ctx, id, bucket)
}

func newTestAttachmentStorage(repo AttachmentRepository, blobs BlobStorage) AttachmentStorage {
	return NewAttachmentStorage(repo, blobs, fixedIDs{id: "att-1"}, logger.Nop())
}

func TestAttachmentStorage_StoreFindOpen(t *testing.T) {
	ctx := context.Background()
	storage := newTestAttachmentStorage(NewMemoryAttachmentRepository(), NewMemoryBlobStorage())

	stored, err := storage.Store(ctx, models.AttachmentUpload{
		OwnerID:     5,
		Bucket:      models.BucketImages,
		Filename:    "cat.png",
		ContentType: "image/png",
		Data:        strings.NewReader("meow"),
	})
	require.NoError(t, err)
	assert.Equal(t, "att-1", stored.ID)
	assert.Equal(t, int64(4), stored.ByteLength)
	assert.False(t, stored.CreatedAt.IsZero())

	found, err := storage.Find(ctx, "att-1", models.BucketImages)
	require.NoError(t, err)
	assert.Equal(t, stored, found)

	content, err := storage.Open(ctx, found)
	require.NoError(t, err)
	defer content.Data.Close()

	data, err := io.ReadAll(content.Data)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))

	count, err := storage.CountOwned(ctx, 5, models.BucketImages, []string{"att-1", "att-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAttachmentStorage_Store_InvalidBucket(t *testing.T) {
	storage := newTestAttachmentStorage(NewMemoryAttachmentRepository(), NewMemoryBlobStorage())

	_, err := storage.Store(context.Background(), models.AttachmentUpload{Bucket: "videos", Data: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrInvalidBucket)
}

func TestAttachmentStorage_Store_RemovesBlobWhenMetadataFails(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStorage()
	repo := &failingAttachmentRepository{AttachmentRepository: NewMemoryAttachmentRepository(), saveErr: errors.New("db down")}
	storage := newTestAttachmentStorage(repo, blobs)

	_, err := storage.Store(ctx, models.AttachmentUpload{Bucket: models.BucketAudios, Data: strings.NewReader("x")})
	require.Error(t, err)

	_, err = blobs.Open(ctx, models.BucketAudios, "att-1")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestAttachmentStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := newTestAttachmentStorage(NewMemoryAttachmentRepository(), NewMemoryBlobStorage())

	_, err := storage.Store(ctx, models.AttachmentUpload{Bucket: models.BucketImages, Data: strings.NewReader("x")})
	require.NoError(t, err)

	ref := models.AttachmentRef{ID: "att-1", Bucket: models.BucketImages}
	require.NoError(t, storage.Delete(ctx, ref))

	_, err = storage.Find(ctx, ref.ID, ref.Bucket)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)

	assert.ErrorIs(t, storage.Delete(ctx, ref), ErrAttachmentNotFound)
}

func TestAttachmentStorage_Delete_MissingBlobOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttachmentRepository()
	storage := newTestAttachmentStorage(repo, NewMemoryBlobStorage())

	require.NoError(t, repo.SaveAttachment(ctx, models.Attachment{ID: "att-1", Bucket: models.BucketImages}))

	assert.NoError(t, storage.Delete(ctx, models.AttachmentRef{ID: "att-1", Bucket: models.BucketImages}))
}

func TestAttachmentStorage_Delete_RemovesBlobEvenIfMetadataFails(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStorage()
	dbErr := errors.New("db down")
	repo := &failingAttachmentRepository{AttachmentRepository: NewMemoryAttachmentRepository(), deleteErr: dbErr}
	storage := newTestAttachmentStorage(repo, blobs)

	_, err := storage.Store(ctx, models.AttachmentUpload{Bucket: models.BucketImages, Data: strings.NewReader("x")})
	require.NoError(t, err)

	err = storage.Delete(ctx, models.AttachmentRef{ID: "att-1", Bucket: models.BucketImages})
	assert.ErrorIs(t, err, dbErr)

	_, err = blobs.Open(ctx, models.BucketImages, "att-1")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}
