// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

// IDGenerator issues identifiers for new attachments.
type IDGenerator interface {
	Generate() string
}

// attachmentStorage is the default implementation of [AttachmentStorage].
//
// It orchestrates two backends: an [AttachmentRepository] holding metadata
// and a [BlobStorage] holding bytes. Bytes are always written before the
// metadata row, so a metadata row never points at missing content.
type attachmentStorage struct {
	repository AttachmentRepository
	blobs      BlobStorage
	ids        IDGenerator
	now        func() time.Time
	logger     *logger.Logger
}

// NewAttachmentStorage constructs an [AttachmentStorage] over the given
// metadata repository and blob storage.
func NewAttachmentStorage(repository AttachmentRepository, blobs BlobStorage, ids IDGenerator, logger *logger.Logger) AttachmentStorage {
	logger.Debug().Msg("creating attachment storage")

	return &attachmentStorage{
		repository: repository,
		blobs:      blobs,
		ids:        ids,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// Store writes upload.Data under a freshly generated id. If the metadata
// row cannot be saved the written bytes are removed again.
func (a *attachmentStorage) Store(ctx context.Context, upload models.AttachmentUpload) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	if !upload.Bucket.Valid() {
		return models.Attachment{}, fmt.Errorf("%w: %q", ErrInvalidBucket, upload.Bucket)
	}

	attachment := models.Attachment{
		ID:          a.ids.Generate(),
		Bucket:      upload.Bucket,
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		OwnerID:     upload.OwnerID,
		CreatedAt:   a.now(),
	}

	written, err := a.blobs.Put(ctx, attachment.Bucket, attachment.ID, upload.Data)
	if err != nil {
		return models.Attachment{}, err
	}
	attachment.ByteLength = written

	if err = a.repository.SaveAttachment(ctx, attachment); err != nil {
		if rmErr := a.blobs.Remove(context.WithoutCancel(ctx), attachment.Bucket, attachment.ID); rmErr != nil {
			log.Err(rmErr).
				Str("func", "attachmentStorage.Store").
				Str("attachment_id", attachment.ID).
				Msg("failed to remove orphaned blob")
		}
		return models.Attachment{}, err
	}

	log.Debug().
		Str("func", "attachmentStorage.Store").
		Str("attachment_id", attachment.ID).
		Str("bucket", string(attachment.Bucket)).
		Int64("length", attachment.ByteLength).
		Msg("attachment stored")

	return attachment, nil
}

func (a *attachmentStorage) Find(ctx context.Context, id string, bucket models.Bucket) (models.Attachment, error) {
	return a.repository.FindAttachment(ctx, id, bucket)
}

func (a *attachmentStorage) Open(ctx context.Context, attachment models.Attachment) (models.AttachmentContent, error) {
	data, err := a.blobs.Open(ctx, attachment.Bucket, attachment.ID)
	if err != nil {
		return models.AttachmentContent{}, err
	}

	return models.AttachmentContent{Attachment: attachment, Data: data}, nil
}

func (a *attachmentStorage) CountOwned(ctx context.Context, ownerID int64, bucket models.Bucket, ids []string) (int, error) {
	return a.repository.CountOwnedAttachments(ctx, ownerID, bucket, ids)
}

// Delete removes both metadata and bytes of ref. It reports
// ErrAttachmentNotFound only when neither of them existed.
func (a *attachmentStorage) Delete(ctx context.Context, ref models.AttachmentRef) error {
	metaErr := a.repository.DeleteAttachment(ctx, ref.ID, ref.Bucket)
	blobErr := a.blobs.Remove(ctx, ref.Bucket, ref.ID)

	metaMissing := errors.Is(metaErr, ErrAttachmentNotFound)
	blobMissing := errors.Is(blobErr, ErrAttachmentNotFound)

	switch {
	case metaMissing && blobMissing:
		return ErrAttachmentNotFound
	case metaMissing:
		metaErr = nil
	case blobMissing:
		blobErr = nil
	}

	return errors.Join(metaErr, blobErr)
}
