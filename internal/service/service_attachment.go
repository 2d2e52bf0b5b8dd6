// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
)

type attachmentService struct {
	storage   store.AttachmentStorage
	validator validators.Validator
	logger    *logger.Logger
}

func NewAttachmentService(storage store.AttachmentStorage, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		storage:   storage,
		validator: validators.NewNoteValidator(),
		logger:    logger,
	}
}

func (a *attachmentService) StoreAttachment(ctx context.Context, upload models.AttachmentUpload) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, upload); err != nil {
		log.Warn().Err(err).Int64("owner_id", upload.OwnerID).Msg("invalid attachment upload")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	attachment, err := a.storage.Store(ctx, upload)
	if err != nil {
		log.Err(err).
			Int64("owner_id", upload.OwnerID).
			Str("bucket", string(upload.Bucket)).
			Msg("storing attachment failed")
		return models.Attachment{}, fmt.Errorf("storing attachment failed: %w", err)
	}

	return attachment, nil
}

// RetrieveAttachment searches images first, then audios. An attachment of
// another user is reported as not found.
func (a *attachmentService) RetrieveAttachment(ctx context.Context, ownerID int64, id string) (models.AttachmentContent, error) {
	for _, bucket := range models.LookupOrder {
		attachment, err := a.storage.Find(ctx, id, bucket)
		if errors.Is(err, store.ErrAttachmentNotFound) {
			continue
		}
		if err != nil {
			return models.AttachmentContent{}, fmt.Errorf("attachment lookup failed: %w", err)
		}

		if attachment.OwnerID != ownerID {
			logger.FromContext(ctx).Warn().
				Int64("owner_id", ownerID).
				Str("attachment_id", id).
				Msg("attachment of another user requested")
			return models.AttachmentContent{}, store.ErrAttachmentNotFound
		}

		return a.storage.Open(ctx, attachment)
	}

	return models.AttachmentContent{}, store.ErrAttachmentNotFound
}

func (a *attachmentService) VerifyOwnership(ctx context.Context, ownerID int64, bucket models.Bucket, ids ...string) error {
	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(unique) == 0 {
		return nil
	}

	owned, err := a.storage.CountOwned(ctx, ownerID, bucket, unique)
	if err != nil {
		return fmt.Errorf("attachment ownership check failed: %w", err)
	}
	if owned != len(unique) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrForeignAttachment)
	}

	return nil
}
