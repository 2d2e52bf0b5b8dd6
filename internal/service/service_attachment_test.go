package service_test

import (
	"context"
	"errors"
	. "github.com/MKhiriev/notes-keeper/internal/service"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/mock"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAttachmentService(t *testing.T) (AttachmentService, *mock.MockAttachmentStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	storage := mock.NewMockAttachmentStorage(ctrl)
	return NewAttachmentService(storage, logger.Nop()), storage
}

func TestAttachmentService_StoreAttachment(t *testing.T) {
	svc, storage := newTestAttachmentService(t)
	upload := models.AttachmentUpload{
		OwnerID: 1, Bucket: models.BucketImages, Filename: "a.png", ContentType: "image/png", Data: strings.NewReader("x"),
	}

	storage.EXPECT().Store(gomock.Any(), upload).Return(models.Attachment{ID: "att", Bucket: models.BucketImages}, nil)

	attachment, err := svc.StoreAttachment(context.Background(), upload)
	require.NoError(t, err)
	assert.Equal(t, "att", attachment.ID)
}

func TestAttachmentService_StoreAttachment_Invalid(t *testing.T) {
	svc, _ := newTestAttachmentService(t)

	_, err := svc.StoreAttachment(context.Background(), models.AttachmentUpload{
		OwnerID: 1, Bucket: "videos", Filename: "a.mp4", Data: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachmentService_RetrieveAttachment_ImagesFirst(t *testing.T) {
	svc, storage := newTestAttachmentService(t)
	image := models.Attachment{ID: "id", Bucket: models.BucketImages, OwnerID: 1}

	gomock.InOrder(
		storage.EXPECT().Find(gomock.Any(), "id", models.BucketImages).Return(image, nil),
		storage.EXPECT().Open(gomock.Any(), image).
			Return(models.AttachmentContent{Attachment: image, Data: io.NopCloser(strings.NewReader("img"))}, nil),
	)

	content, err := svc.RetrieveAttachment(context.Background(), 1, "id")
	require.NoError(t, err)
	assert.Equal(t, models.BucketImages, content.Bucket)
}

func TestAttachmentService_RetrieveAttachment_FallsBackToAudios(t *testing.T) {
	svc, storage := newTestAttachmentService(t)
	audio := models.Attachment{ID: "id", Bucket: models.BucketAudios, OwnerID: 1}

	gomock.InOrder(
		storage.EXPECT().Find(gomock.Any(), "id", models.BucketImages).Return(models.Attachment{}, store.ErrAttachmentNotFound),
		storage.EXPECT().Find(gomock.Any(), "id", models.BucketAudios).Return(audio, nil),
		storage.EXPECT().Open(gomock.Any(), audio).
			Return(models.AttachmentContent{Attachment: audio, Data: io.NopCloser(strings.NewReader("mp3"))}, nil),
	)

	content, err := svc.RetrieveAttachment(context.Background(), 1, "id")
	require.NoError(t, err)
	assert.Equal(t, models.BucketAudios, content.Bucket)
}

func TestAttachmentService_RetrieveAttachment_NotFound(t *testing.T) {
	svc, storage := newTestAttachmentService(t)

	storage.EXPECT().Find(gomock.Any(), "id", gomock.Any()).Return(models.Attachment{}, store.ErrAttachmentNotFound).Times(2)

	_, err := svc.RetrieveAttachment(context.Background(), 1, "id")
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
}

func TestAttachmentService_RetrieveAttachment_ForeignOwner(t *testing.T) {
	svc, storage := newTestAttachmentService(t)

	storage.EXPECT().Find(gomock.Any(), "id", models.BucketImages).
		Return(models.Attachment{ID: "id", Bucket: models.BucketImages, OwnerID: 2}, nil)

	_, err := svc.RetrieveAttachment(context.Background(), 1, "id")
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
}

func TestAttachmentService_RetrieveAttachment_StorageFailure(t *testing.T) {
	svc, storage := newTestAttachmentService(t)
	boom := errors.New("db down")

	storage.EXPECT().Find(gomock.Any(), "id", models.BucketImages).Return(models.Attachment{}, boom)

	_, err := svc.RetrieveAttachment(context.Background(), 1, "id")
	assert.ErrorIs(t, err, boom)
}

func TestAttachmentService_VerifyOwnership(t *testing.T) {
	t.Run("no ids", func(t *testing.T) {
		svc, _ := newTestAttachmentService(t)
		assert.NoError(t, svc.VerifyOwnership(context.Background(), 1, models.BucketImages))
	})

	t.Run("duplicates are counted once", func(t *testing.T) {
		svc, storage := newTestAttachmentService(t)
		storage.EXPECT().CountOwned(gomock.Any(), int64(1), models.BucketImages, []string{"a", "b"}).Return(2, nil)

		assert.NoError(t, svc.VerifyOwnership(context.Background(), 1, models.BucketImages, "b", "a", "b"))
	})

	t.Run("foreign or missing id", func(t *testing.T) {
		svc, storage := newTestAttachmentService(t)
		storage.EXPECT().CountOwned(gomock.Any(), int64(1), models.BucketAudios, []string{"a"}).Return(0, nil)

		err := svc.VerifyOwnership(context.Background(), 1, models.BucketAudios, "a")
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrForeignAttachment)
	})
}
