package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title is required", service.ErrValidation), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusBadRequest},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
		{fmt.Errorf("lookup: %w", store.ErrNoUserWasFound), http.StatusNotFound},
		{store.ErrNoteNotFound, http.StatusNotFound},
		{store.ErrAttachmentNotFound, http.StatusNotFound},
		{store.ErrUsernameAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: %w", ErrInvalidID, errors.New("bad")), http.StatusBadRequest},
		{fmt.Errorf("%w: %w", ErrInvalidForm, &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{store.ErrExecutingQuery, http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
