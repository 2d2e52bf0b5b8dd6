package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNoUserInContext:            http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidGZipBody:            http.StatusBadRequest,
	ErrInvalidForm:                http.StatusBadRequest,
	ErrInvalidID:                  http.StatusBadRequest,
	ErrUnsupportedUploadKind:      http.StatusBadRequest,
	ErrMissingFile:                http.StatusBadRequest,

	service.ErrValidation:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusBadRequest,
	service.ErrUnauthorized:       http.StatusUnauthorized,

	store.ErrInvalidBucket:         http.StatusBadRequest,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrNoteNotFound:          http.StatusNotFound,
	store.ErrAttachmentNotFound:    http.StatusNotFound,
}

func statusFromError(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err with the request logger and answers with a JSON
// [models.ErrorResponse] carrying the error text.
func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(message)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(message)
	}

	body := models.ErrorResponse{Message: message, Error: err.Error()}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}
