package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/notes-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
}

// NoteService manages notes of a single owner. Operations on a note of
// another user fail with store.ErrNoteNotFound.
type NoteService interface {
	CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error)
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)
	UpdateNote(ctx context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error)
	SetFavourite(ctx context.Context, ownerID int64, noteID string, isFavourite bool) (models.Note, error)
	DeleteNote(ctx context.Context, ownerID int64, noteID string) error
	RemoveImage(ctx context.Context, ownerID int64, noteID, imageID string) (models.Note, error)
}

type AttachmentService interface {
	StoreAttachment(ctx context.Context, upload models.AttachmentUpload) (models.Attachment, error)
	// RetrieveAttachment looks the id up in every bucket in models.LookupOrder.
	// The caller must close the returned content.
	RetrieveAttachment(ctx context.Context, ownerID int64, id string) (models.AttachmentContent, error)
	// VerifyOwnership fails with ErrValidation unless every id exists in
	// bucket and belongs to ownerID.
	VerifyOwnership(ctx context.Context, ownerID int64, bucket models.Bucket, ids ...string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AttachmentCleaner deletes attachments in the background. Enqueue never
// blocks the caller and never fails it.
type AttachmentCleaner interface {
	Enqueue(ctx context.Context, refs ...models.AttachmentRef)
}

// NoteServiceWrapper defines middleware composition for NoteService.
// Implementations wrap an existing NoteService to add behavior such as
// logging or validating.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService // returns a decorated NoteService applying additional behavior
}
