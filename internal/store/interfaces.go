package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/notes-keeper/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser stores a new account and returns it with UserID and
	// CreatedAt assigned. A taken username yields ErrUsernameAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns the account with the given username or
	// ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindUserByID returns the account with the given id or ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// NoteRepository persists notes. Every method except CreateNote is scoped to
// the owner: a note of another user behaves as if it did not exist.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)
	GetNote(ctx context.Context, ownerID int64, noteID string) (models.Note, error)
	// UpdateNote writes only the fields set in update and returns the
	// resulting note.
	UpdateNote(ctx context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error)
	// DeleteNote removes the note and returns it as it was before removal.
	DeleteNote(ctx context.Context, ownerID int64, noteID string) (models.Note, error)
}

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	SaveAttachment(ctx context.Context, attachment models.Attachment) error
	FindAttachment(ctx context.Context, id string, bucket models.Bucket) (models.Attachment, error)
	// CountOwnedAttachments returns how many of ids exist in bucket and
	// belong to ownerID.
	CountOwnedAttachments(ctx context.Context, ownerID int64, bucket models.Bucket, ids []string) (int, error)
	DeleteAttachment(ctx context.Context, id string, bucket models.Bucket) error
}

// BlobStorage keeps attachment bytes addressed by bucket and id.
type BlobStorage interface {
	// Put streams r into bucket/id and returns the number of bytes written.
	Put(ctx context.Context, bucket models.Bucket, id string, r io.Reader) (int64, error)
	// Open returns a reader of bucket/id or ErrAttachmentNotFound.
	Open(ctx context.Context, bucket models.Bucket, id string) (io.ReadCloser, error)
	// Remove deletes bucket/id or returns ErrAttachmentNotFound.
	Remove(ctx context.Context, bucket models.Bucket, id string) error
}

// AttachmentStorage combines metadata and bytes of attachments.
type AttachmentStorage interface {
	// Store assigns an id, writes the bytes and then the metadata.
	Store(ctx context.Context, upload models.AttachmentUpload) (models.Attachment, error)
	Find(ctx context.Context, id string, bucket models.Bucket) (models.Attachment, error)
	// Open returns the attachment together with a stream of its bytes.
	Open(ctx context.Context, attachment models.Attachment) (models.AttachmentContent, error)
	CountOwned(ctx context.Context, ownerID int64, bucket models.Bucket, ids []string) (int, error)
	// Delete removes metadata and bytes; both are attempted even if one fails.
	Delete(ctx context.Context, ref models.AttachmentRef) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
