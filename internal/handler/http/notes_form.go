package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/notes-keeper/models"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills into temporary files.
const multipartMemory = 8 << 20

// Form fields of a multipart note.
const (
	fieldTitle    = "title"
	fieldContent  = "content"
	fieldDuration = "duration"
	fieldImages   = "images"
	fieldImage    = "image"
	fieldAudio    = "audio"
	fieldFile     = "file"
)

// noteForm is a parsed multipart note. Close releases the opened files and
// the temporary files of the form.
type noteForm struct {
	request models.CreateNoteRequest
	form    *multipart.Form
	files   []io.Closer
}

func parseNoteForm(r *http.Request) (*noteForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	nf := &noteForm{form: r.MultipartForm}
	req := &nf.request
	req.Title = r.FormValue(fieldTitle)
	req.Content = r.FormValue(fieldContent)

	if raw := strings.TrimSpace(r.FormValue(fieldDuration)); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			nf.Close()
			return nil, fmt.Errorf("%w: duration %q is not a number", ErrInvalidForm, raw)
		}
		req.Duration = duration
	}

	// text values of the file fields reference already uploaded attachments
	for _, id := range nf.form.Value[fieldImages] {
		if id = strings.TrimSpace(id); id != "" {
			req.Images = append(req.Images, id)
		}
	}
	if id := strings.TrimSpace(firstValue(nf.form.Value[fieldAudio])); id != "" {
		req.Audio = &id
	}

	// both "images" and "image" are accepted for image files
	for _, fh := range slices.Concat(nf.form.File[fieldImages], nf.form.File[fieldImage]) {
		upload, err := nf.open(fh, models.BucketImages)
		if err != nil {
			nf.Close()
			return nil, err
		}
		req.InlineImages = append(req.InlineImages, upload)
	}

	if audioHeaders := nf.form.File[fieldAudio]; len(audioHeaders) > 0 {
		upload, err := nf.open(audioHeaders[0], models.BucketAudios)
		if err != nil {
			nf.Close()
			return nil, err
		}
		req.InlineAudio = &upload
	}

	return nf, nil
}

func (nf *noteForm) open(fh *multipart.FileHeader, bucket models.Bucket) (models.AttachmentUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return models.AttachmentUpload{}, fmt.Errorf("%w: error opening %q: %w", ErrInvalidForm, fh.Filename, err)
	}
	nf.files = append(nf.files, file)

	return uploadFromPart(fh, file, bucket), nil
}

func (nf *noteForm) Close() error {
	var errs []error
	for _, f := range nf.files {
		errs = append(errs, f.Close())
	}
	if nf.form != nil {
		errs = append(errs, nf.form.RemoveAll())
	}
	return errors.Join(errs...)
}

func uploadFromPart(fh *multipart.FileHeader, data io.Reader, bucket models.Bucket) models.AttachmentUpload {
	return models.AttachmentUpload{
		Bucket:      bucket,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
