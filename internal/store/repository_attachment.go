package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

// attachmentRepository is the PostgreSQL-backed implementation of
// [AttachmentRepository] over the "attachments" table.
type attachmentRepository struct {
	*DB
	logger *logger.Logger
}

func NewAttachmentRepository(db *DB, logger *logger.Logger) AttachmentRepository {
	logger.Debug().Msg("creating attachment repository")
	return &attachmentRepository{
		DB:     db,
		logger: logger,
	}
}

func (a *attachmentRepository) SaveAttachment(ctx context.Context, attachment models.Attachment) error {
	log := logger.FromContext(ctx)

	_, err := a.DB.ExecContext(ctx, saveAttachment,
		attachment.ID,
		string(attachment.Bucket),
		attachment.Filename,
		attachment.ContentType,
		attachment.ByteLength,
		attachment.OwnerID,
		attachment.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.SaveAttachment").
			Str("attachment_id", attachment.ID).
			Msg("failed to insert attachment metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (a *attachmentRepository) FindAttachment(ctx context.Context, id string, bucket models.Bucket) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	var (
		attachment models.Attachment
		bucketName string
	)
	err := a.withRetry(ctx, func(ctx context.Context) error {
		row := a.DB.QueryRowContext(ctx, findAttachment, id, string(bucket))
		return row.Scan(
			&attachment.ID,
			&bucketName,
			&attachment.Filename,
			&attachment.ContentType,
			&attachment.ByteLength,
			&attachment.OwnerID,
			&attachment.CreatedAt,
		)
	})

	switch {
	case err == nil:
		attachment.Bucket = models.Bucket(bucketName)
		return attachment, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Attachment{}, ErrAttachmentNotFound
	default:
		log.Err(err).
			Str("func", "attachmentRepository.FindAttachment").
			Str("attachment_id", id).
			Str("bucket", string(bucket)).
			Msg("failed to find attachment metadata")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (a *attachmentRepository) CountOwnedAttachments(ctx context.Context, ownerID int64, bucket models.Bucket, ids []string) (int, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildCountOwnedAttachmentsQuery(ownerID, bucket, ids)
	if err != nil {
		return 0, err
	}

	var count int
	err = a.withRetry(ctx, func(ctx context.Context) error {
		return a.DB.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.CountOwnedAttachments").
			Int64("owner_id", ownerID).
			Msg("failed to count owned attachments")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (a *attachmentRepository) DeleteAttachment(ctx context.Context, id string, bucket models.Bucket) error {
	log := logger.FromContext(ctx)

	result, err := a.DB.ExecContext(ctx, deleteAttachment, id, string(bucket))
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.DeleteAttachment").
			Str("attachment_id", id).
			Msg("failed to delete attachment metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAttachmentNotFound
	}

	return nil
}
