package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
)

// Storages bundles every persistence component the service layer needs.
type Storages struct {
	UserRepository    UserRepository
	NoteRepository    NoteRepository
	AttachmentStorage AttachmentStorage

	closer func() error
}

// NewStorages builds the storages selected by cfg. With [MemoryDSN] every
// component lives in process memory; otherwise PostgreSQL is connected and
// migrated and attachment bytes are kept under cfg.Files.BinaryDataDir.
// Any failure is returned so the process can refuse to start.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	ids := utils.NewUUIDGenerator()

	if cfg.DB.DSN == MemoryDSN {
		log.Warn().Str("func", "NewStorages").Msg("using in-memory storages, data will not survive a restart")
		return &Storages{
			UserRepository:    NewMemoryUserRepository(),
			NoteRepository:    NewMemoryNoteRepository(),
			AttachmentStorage: NewAttachmentStorage(NewMemoryAttachmentRepository(), NewMemoryBlobStorage(), ids, log),
		}, nil
	}

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	blobs, err := NewFileBlobStorage(cfg.Files.BinaryDataDir, log)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error creating blob storage")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		NoteRepository:    NewNoteRepository(db, log),
		AttachmentStorage: NewAttachmentStorage(NewAttachmentRepository(db, log), blobs, ids, log),
		closer:            db.Close,
	}, nil
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
