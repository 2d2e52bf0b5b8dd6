// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs several
// workers until their context is cancelled, and the AttachmentCleaner that
// deletes attachments left behind by removed notes.
package workers

import (
	"context"

	"github.com/MKhiriev/notes-keeper/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled and the worker has finished its pending
// work, or until it fails.
type Worker interface {
	Run(ctx context.Context) error
}

// AttachmentDeleter removes the metadata and bytes of one attachment.
type AttachmentDeleter interface {
	Delete(ctx context.Context, ref models.AttachmentRef) error
}
