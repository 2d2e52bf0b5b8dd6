package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/models"
)

// IDGenerator issues note identifiers.
type IDGenerator interface {
	Generate() string
}

// noteService implements NoteService on top of a NoteRepository. Attachment
// references are checked through the AttachmentService and deleted
// attachments are handed to the AttachmentCleaner.
type noteService struct {
	notes       store.NoteRepository
	attachments AttachmentService
	cleaner     AttachmentCleaner
	ids         IDGenerator
	now         func() time.Time
	logger      *logger.Logger
}

func NewNoteService(
	notes store.NoteRepository,
	attachments AttachmentService,
	cleaner AttachmentCleaner,
	ids IDGenerator,
	logger *logger.Logger,
) NoteService {
	return &noteService{
		notes:       notes,
		attachments: attachments,
		cleaner:     cleaner,
		ids:         ids,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// CreateNote checks referenced attachments, stores inline files and persists
// the note. Inline files are queued for cleanup when the note is not saved.
func (n *noteService) CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	if req.Audio != nil && *req.Audio != "" && req.InlineAudio != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrValidation, ErrAudioGivenTwice)
	}

	if err := n.attachments.VerifyOwnership(ctx, req.OwnerID, models.BucketImages, req.Images...); err != nil {
		return models.Note{}, err
	}
	if req.Audio != nil && *req.Audio != "" {
		if err := n.attachments.VerifyOwnership(ctx, req.OwnerID, models.BucketAudios, *req.Audio); err != nil {
			return models.Note{}, err
		}
	}

	note := models.Note{
		ID:       n.ids.Generate(),
		OwnerID:  req.OwnerID,
		Title:    req.Title,
		Content:  req.Content,
		Images:   slices.Clone(req.Images),
		Duration: req.Duration,
		SavedAt:  n.now(),
	}
	if req.Audio != nil && *req.Audio != "" {
		audio := *req.Audio
		note.Audio = &audio
	}

	var uploaded []models.AttachmentRef
	for _, upload := range req.InlineImages {
		upload.OwnerID, upload.Bucket = req.OwnerID, models.BucketImages
		attachment, err := n.attachments.StoreAttachment(ctx, upload)
		if err != nil {
			n.cleaner.Enqueue(ctx, uploaded...)
			return models.Note{}, err
		}
		uploaded = append(uploaded, attachment.Ref())
		note.Images = append(note.Images, attachment.ID)
	}
	if req.InlineAudio != nil {
		upload := *req.InlineAudio
		upload.OwnerID, upload.Bucket = req.OwnerID, models.BucketAudios
		attachment, err := n.attachments.StoreAttachment(ctx, upload)
		if err != nil {
			n.cleaner.Enqueue(ctx, uploaded...)
			return models.Note{}, err
		}
		uploaded = append(uploaded, attachment.Ref())
		note.Audio = &attachment.ID
	}

	created, err := n.notes.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).
			Int64("owner_id", req.OwnerID).
			Int("inline_uploads", len(uploaded)).
			Msg("note creation failed")
		n.cleaner.Enqueue(ctx, uploaded...)
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return created, nil
}

func (n *noteService) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	notes, err := n.notes.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing notes failed: %w", err)
	}
	return notes, nil
}

// UpdateNote writes the fields present in update. Replaced attachment
// references must belong to the owner.
func (n *noteService) UpdateNote(ctx context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error) {
	if update.Images != nil {
		if err := n.attachments.VerifyOwnership(ctx, ownerID, models.BucketImages, *update.Images...); err != nil {
			return models.Note{}, err
		}
	}
	if update.Audio != nil && *update.Audio != "" {
		if err := n.attachments.VerifyOwnership(ctx, ownerID, models.BucketAudios, *update.Audio); err != nil {
			return models.Note{}, err
		}
	}

	note, err := n.notes.UpdateNote(ctx, ownerID, noteID, update)
	if err != nil {
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	return note, nil
}

func (n *noteService) SetFavourite(ctx context.Context, ownerID int64, noteID string, isFavourite bool) (models.Note, error) {
	note, err := n.notes.UpdateNote(ctx, ownerID, noteID, models.NoteUpdate{IsFavourite: &isFavourite})
	if err != nil {
		return models.Note{}, fmt.Errorf("favourite update failed: %w", err)
	}
	return note, nil
}

// DeleteNote removes the note and queues every attachment it referenced.
func (n *noteService) DeleteNote(ctx context.Context, ownerID int64, noteID string) error {
	note, err := n.notes.DeleteNote(ctx, ownerID, noteID)
	if err != nil {
		return fmt.Errorf("note deletion failed: %w", err)
	}

	n.cleaner.Enqueue(ctx, note.AttachmentRefs()...)

	return nil
}

// RemoveImage detaches imageID from the note and queues the attachment for
// deletion.
func (n *noteService) RemoveImage(ctx context.Context, ownerID int64, noteID, imageID string) (models.Note, error) {
	note, err := n.notes.GetNote(ctx, ownerID, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}
	if !note.HasImage(imageID) {
		return models.Note{}, store.ErrAttachmentNotFound
	}

	images := slices.DeleteFunc(slices.Clone(note.Images), func(id string) bool { return id == imageID })
	updated, err := n.notes.UpdateNote(ctx, ownerID, noteID, models.NoteUpdate{Images: &images})
	if err != nil {
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	n.cleaner.Enqueue(ctx, models.AttachmentRef{ID: imageID, Bucket: models.BucketImages})

	return updated, nil
}
