// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// createNote accepts either a JSON body or a multipart form carrying the
// note fields and the image/audio files to attach.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "unauthorized")
		return
	}

	var req models.CreateNoteRequest
	if isMultipart(r) {
		form, err := parseNoteForm(r)
		if err != nil {
			writeError(w, r, err, "invalid note form")
			return
		}
		defer form.Close()
		req = form.request
	} else if err = utils.ReadJSON(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	req.OwnerID = ownerID
	req.Images = canonicalIDs(req.Images)
	req.Audio = canonicalID(req.Audio)
	for i := range req.InlineImages {
		req.InlineImages[i].OwnerID = ownerID
	}
	if req.InlineAudio != nil {
		req.InlineAudio.OwnerID = ownerID
	}

	note, err := h.services.NoteService.CreateNote(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error creating note")
		return
	}

	log.Info().Str("note_id", note.ID).Int64("owner_id", ownerID).Msg("note created")
	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "unauthorized")
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, err, "error listing notes")
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, err := ownerAndNoteID(r)
	if err != nil {
		writeError(w, r, err, "invalid request")
		return
	}

	var update models.NoteUpdate
	if err = utils.ReadJSON(r.Body, &update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	if update.Images != nil {
		images := canonicalIDs(*update.Images)
		update.Images = &images
	}
	update.Audio = canonicalID(update.Audio)

	note, err := h.services.NoteService.UpdateNote(r.Context(), ownerID, noteID, update)
	if err != nil {
		writeError(w, r, err, "error updating note")
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) setFavourite(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, err := ownerAndNoteID(r)
	if err != nil {
		writeError(w, r, err, "invalid request")
		return
	}

	var req models.FavouriteRequest
	if err = utils.ReadJSON(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}
	if req.IsFavourite == nil {
		writeError(w, r, fmt.Errorf("%w: isFavourite is required", service.ErrValidation), "invalid request")
		return
	}

	note, err := h.services.NoteService.SetFavourite(r.Context(), ownerID, noteID, *req.IsFavourite)
	if err != nil {
		writeError(w, r, err, "error updating favourite status")
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, err := ownerAndNoteID(r)
	if err != nil {
		writeError(w, r, err, "invalid request")
		return
	}

	if err = h.services.NoteService.DeleteNote(r.Context(), ownerID, noteID); err != nil {
		writeError(w, r, err, "error deleting note")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Note deleted successfully"}, http.StatusOK)
}

func (h *Handler) removeImage(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, err := ownerAndNoteID(r)
	if err != nil {
		writeError(w, r, err, "invalid request")
		return
	}

	imageID, err := pathUUID(r, "imageId")
	if err != nil {
		writeError(w, r, err, "invalid request")
		return
	}

	note, err := h.services.NoteService.RemoveImage(r.Context(), ownerID, noteID, imageID)
	if err != nil {
		writeError(w, r, err, "error removing image")
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func ownerAndNoteID(r *http.Request) (int64, string, error) {
	ownerID, err := userIDFromRequest(r)
	if err != nil {
		return 0, "", err
	}

	noteID, err := pathUUID(r, "id")
	if err != nil {
		return 0, "", err
	}

	return ownerID, noteID, nil
}

// pathUUID returns the URL parameter name in its canonical UUID form.
func pathUUID(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidID, name, raw)
	}
	return id.String(), nil
}

// canonicalIDs rewrites parseable ids in their lowercase form; anything else
// is left for validation to reject.
func canonicalIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = *canonicalID(&id)
	}
	return out
}

func canonicalID(id *string) *string {
	if id == nil || *id == "" {
		return id
	}
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return id
	}
	canonical := parsed.String()
	return &canonical
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
