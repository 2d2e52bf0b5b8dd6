package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attachmentColumns = []string{"id", "bucket", "filename", "content_type", "byte_length", "owner_id", "created_at"}

func newTestAttachmentRepo(t *testing.T) (*attachmentRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &attachmentRepository{DB: db, logger: db.logger}, mock
}

func TestAttachmentRepository_SaveAttachment(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO attachments").
		WithArgs("id-1", "images", "cat.png", "image/png", int64(3), int64(1), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveAttachment(context.Background(), models.Attachment{
		ID: "id-1", Bucket: models.BucketImages, Filename: "cat.png", ContentType: "image/png",
		ByteLength: 3, OwnerID: 1, CreatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_SaveAttachment_Error(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	mock.ExpectExec("INSERT INTO attachments").WillReturnError(errors.New("fk violation"))

	err := repo.SaveAttachment(context.Background(), models.Attachment{ID: "id-1", Bucket: models.BucketImages})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestAttachmentRepository_FindAttachment(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	rows := sqlmock.NewRows(attachmentColumns).
		AddRow("id-1", "audios", "memo.mp3", "audio/mpeg", int64(10), int64(4), time.Now())
	mock.ExpectQuery("SELECT id, bucket").WithArgs("id-1", "audios").WillReturnRows(rows)

	attachment, err := repo.FindAttachment(context.Background(), "id-1", models.BucketAudios)
	require.NoError(t, err)
	assert.Equal(t, models.BucketAudios, attachment.Bucket)
	assert.Equal(t, int64(4), attachment.OwnerID)
	assert.Equal(t, int64(10), attachment.ByteLength)
}

func TestAttachmentRepository_FindAttachment_NotFound(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	mock.ExpectQuery("SELECT id, bucket").WithArgs("id-1", "images").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindAttachment(context.Background(), "id-1", models.BucketImages)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestAttachmentRepository_CountOwnedAttachments(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT id\) FROM attachments`).
		WithArgs("images", "a", "b", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOwnedAttachments(context.Background(), 1, models.BucketImages, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAttachmentRepository_CountOwnedAttachments_NoIDs(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	count, err := repo.CountOwnedAttachments(context.Background(), 1, models.BucketImages, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_DeleteAttachment(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	mock.ExpectExec("DELETE FROM attachments").
		WithArgs("id-1", "images").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteAttachment(context.Background(), "id-1", models.BucketImages))
}

func TestAttachmentRepository_DeleteAttachment_NotFound(t *testing.T) {
	repo, mock := newTestAttachmentRepo(t)

	mock.ExpectExec("DELETE FROM attachments").
		WithArgs("id-1", "images").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteAttachment(context.Background(), "id-1", models.BucketImages)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}
