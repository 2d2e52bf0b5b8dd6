package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/go-chi/chi/v5"
)

const defaultContentType = "application/octet-stream"

// uploadFile stores the "file" part of a multipart request in the bucket
// named by the {kind} URL parameter.
func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "unauthorized")
		return
	}

	kind := chi.URLParam(r, "kind")
	bucket, ok := models.BucketForKind(kind)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: %q", ErrUnsupportedUploadKind, kind), "invalid upload kind")
		return
	}

	if err = r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err), "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fh, err := r.FormFile(fieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = ErrMissingFile
		}
		writeError(w, r, err, "No file uploaded")
		return
	}
	defer file.Close()

	upload := uploadFromPart(fh, file, bucket)
	upload.OwnerID = ownerID

	attachment, err := h.services.AttachmentService.StoreAttachment(r.Context(), upload)
	if err != nil {
		writeError(w, r, err, "error uploading file")
		return
	}

	log.Info().
		Str("attachment_id", attachment.ID).
		Str("bucket", string(attachment.Bucket)).
		Int64("length", attachment.ByteLength).
		Msg("attachment uploaded")

	utils.WriteJSON(w, models.UploadResponse{
		FileID:   attachment.ID,
		Filename: attachment.Filename,
	}, http.StatusCreated)
}

// getFile streams the bytes of an attachment owned by the caller.
func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "unauthorized")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, "Invalid file ID")
		return
	}

	content, err := h.services.AttachmentService.RetrieveAttachment(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, r, err, "File not found")
		return
	}
	defer content.Data.Close()

	contentType := content.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(content.ByteLength, 10))
	if content.Filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": content.Filename}))
	}
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, content.Data); err != nil {
		log.Err(err).Str("attachment_id", id).Msg("error streaming attachment")
	}
}
