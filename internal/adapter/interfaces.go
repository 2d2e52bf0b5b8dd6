// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed Go client for the notes-keeper REST API.
//
// [NotesAPI] hides the transport: it serialises requests, keeps the bearer
// token obtained on signup or login, and maps HTTP status codes to the
// sentinel errors of this package so that callers can use [errors.Is]
// (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/notes-keeper/models"
)

// NotesAPI is a client of the notes-keeper server. Methods other than
// Signup, Login and ServerVersion require a token, set either by a
// successful Signup/Login or explicitly via SetToken.
type NotesAPI interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token or "".
	Token() string

	// Signup registers user and stores the returned token.
	Signup(ctx context.Context, user models.User) (string, error)

	// Login authenticates user and stores the returned token.
	Login(ctx context.Context, user models.User) (string, error)

	// Verify checks the stored token. An invalid token is reported as a
	// response with Valid == false and a nil error.
	Verify(ctx context.Context) (models.VerifyResponse, error)

	Dashboard(ctx context.Context) (models.User, error)

	// CreateNote sends a JSON request, or a multipart one when req carries
	// inline files.
	CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	UpdateNote(ctx context.Context, noteID string, update models.NoteUpdate) (models.Note, error)
	SetFavourite(ctx context.Context, noteID string, isFavourite bool) (models.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
	RemoveImage(ctx context.Context, noteID, imageID string) (models.Note, error)

	// UploadAttachment stores data under kind ("image" or "audio").
	UploadAttachment(ctx context.Context, kind, filename, contentType string, data io.Reader) (models.UploadResponse, error)

	// DownloadAttachment streams an attachment. The caller must close Data.
	DownloadAttachment(ctx context.Context, id string) (models.AttachmentContent, error)

	ServerVersion(ctx context.Context) (string, error)
}
