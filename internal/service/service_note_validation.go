package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
)

// NoteValidationService checks note payloads before handing them to the
// wrapped NoteService.
type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NoteValidationService) CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.CreateNote(ctx, req)
}

func (v *NoteValidationService) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	return v.inner.ListNotes(ctx, ownerID)
}

func (v *NoteValidationService) UpdateNote(ctx context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.UpdateNote(ctx, ownerID, noteID, update)
}

func (v *NoteValidationService) SetFavourite(ctx context.Context, ownerID int64, noteID string, isFavourite bool) (models.Note, error) {
	return v.inner.SetFavourite(ctx, ownerID, noteID, isFavourite)
}

func (v *NoteValidationService) DeleteNote(ctx context.Context, ownerID int64, noteID string) error {
	return v.inner.DeleteNote(ctx, ownerID, noteID)
}

func (v *NoteValidationService) RemoveImage(ctx context.Context, ownerID int64, noteID, imageID string) (models.Note, error) {
	return v.inner.RemoveImage(ctx, ownerID, noteID, imageID)
}

func (v *NoteValidationService) Wrap(wrapper NoteService) NoteService {
	v.inner = wrapper
	return v
}
