package service

import (
	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/internal/utils"
)

type Services struct {
	AuthService       AuthService
	NoteService       NoteService
	AttachmentService AttachmentService
	AppInfoService    AppInfoService
}

// NewServices wires the services over storages. cleaner receives the
// attachments left behind by deleted notes.
func NewServices(storages *store.Storages, cleaner AttachmentCleaner, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	attachmentService := NewAttachmentService(storages.AttachmentStorage, logger)
	noteService := NewNoteValidationService().Wrap(
		NewNoteService(storages.NoteRepository, attachmentService, cleaner, utils.NewUUIDGenerator(), logger),
	)

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		NoteService:       noteService,
		AttachmentService: attachmentService,
		AppInfoService:    appInfoService,
	}, nil
}
