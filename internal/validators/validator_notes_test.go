// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const validUUID = "0190c2a0-7b1e-7cc3-9d3a-8f1d2e3c4b5a"

func ptr[T any](v T) *T { return &v }

func validCreateNote() models.CreateNoteRequest {
	return models.CreateNoteRequest{
		OwnerID: 1,
		Title:   "Groceries",
		Content: "milk, eggs",
		Images:  []string{validUUID},
	}
}

func validUpload(bucket models.Bucket) models.AttachmentUpload {
	return models.AttachmentUpload{
		OwnerID:     1,
		Bucket:      bucket,
		Filename:    "a.png",
		ContentType: "image/png",
		Data:        strings.NewReader("x"),
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewNoteValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// User
// ---------------------------------------------------------------------------

func TestValidate_User(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		user    models.User
		fields  []string
		wantErr error
		wantMsg string
	}{
		{
			name: "valid signup",
			user: models.User{Username: "alice", Password: "pw", Email: "a@b.io"},
		},
		{
			name: "email is optional",
			user: models.User{Username: "alice", Password: "pw"},
		},
		{
			name:    "missing username",
			user:    models.User{Password: "pw"},
			wantErr: ErrInvalidInput,
			wantMsg: "username is required",
		},
		{
			name:    "missing password",
			user:    models.User{Username: "alice"},
			wantErr: ErrInvalidInput,
			wantMsg: "password is required",
		},
		{
			name:    "malformed email",
			user:    models.User{Username: "alice", Password: "pw", Email: "nope"},
			wantErr: ErrInvalidInput,
			wantMsg: "email must be a valid email",
		},
		{
			name:   "login ignores email",
			user:   models.User{Username: "alice", Password: "pw", Email: "nope"},
			fields: []string{FieldUsername, FieldPassword},
		},
		{
			name:    "unknown field",
			user:    models.User{Username: "alice", Password: "pw"},
			fields:  []string{"Nickname"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.user, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// CreateNoteRequest
// ---------------------------------------------------------------------------

func TestValidate_CreateNote(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.CreateNoteRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.CreateNoteRequest) {}},
		{name: "empty title", mutate: func(r *models.CreateNoteRequest) { r.Title = "" }, wantErr: ErrInvalidInput},
		{name: "empty content", mutate: func(r *models.CreateNoteRequest) { r.Content = "" }, wantErr: ErrInvalidInput},
		{name: "bad image id", mutate: func(r *models.CreateNoteRequest) { r.Images = []string{"nope"} }, wantErr: ErrInvalidInput},
		{name: "bad audio id", mutate: func(r *models.CreateNoteRequest) { r.Audio = ptr("nope") }, wantErr: ErrInvalidInput},
		{name: "negative duration", mutate: func(r *models.CreateNoteRequest) { r.Duration = -1 }, wantErr: ErrInvalidInput},
		{name: "no owner", mutate: func(r *models.CreateNoteRequest) { r.OwnerID = 0 }, wantErr: ErrInvalidOwnerID},
		{
			name: "inline image",
			mutate: func(r *models.CreateNoteRequest) {
				r.InlineImages = []models.AttachmentUpload{validUpload(models.BucketImages)}
			},
		},
		{
			name: "inline image in audio bucket",
			mutate: func(r *models.CreateNoteRequest) {
				r.InlineImages = []models.AttachmentUpload{validUpload(models.BucketAudios)}
			},
			wantErr: ErrUnknownBucket,
		},
		{
			name: "inline audio without filename",
			mutate: func(r *models.CreateNoteRequest) {
				u := validUpload(models.BucketAudios)
				u.Filename = " "
				r.InlineAudio = &u
			},
			wantErr: ErrEmptyFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateNote()
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_CreateNote_MessageUsesJSONNames(t *testing.T) {
	req := validCreateNote()
	req.Title = ""

	err := NewNoteValidator().Validate(context.Background(), &req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

// ---------------------------------------------------------------------------
// NoteUpdate
// ---------------------------------------------------------------------------

func TestValidate_NoteUpdate(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		update  models.NoteUpdate
		wantErr error
	}{
		{name: "empty update", update: models.NoteUpdate{}},
		{name: "title only", update: models.NoteUpdate{Title: ptr("new")}},
		{name: "clear audio", update: models.NoteUpdate{Audio: ptr("")}},
		{name: "replace images", update: models.NoteUpdate{Images: &[]string{validUUID}}},
		{name: "clear images", update: models.NoteUpdate{Images: &[]string{}}},
		{name: "empty title", update: models.NoteUpdate{Title: ptr("")}, wantErr: ErrEmptyTitle},
		{name: "empty content", update: models.NoteUpdate{Content: ptr("")}, wantErr: ErrEmptyContent},
		{name: "bad image", update: models.NoteUpdate{Images: &[]string{"x"}}, wantErr: ErrInvalidAttachmentID},
		{name: "bad audio", update: models.NoteUpdate{Audio: ptr("x")}, wantErr: ErrInvalidAttachmentID},
		{name: "negative duration", update: models.NoteUpdate{Duration: ptr(-0.5)}, wantErr: ErrNegativeDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.update)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// AttachmentUpload
// ---------------------------------------------------------------------------

func TestValidate_AttachmentUpload(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	ok := validUpload(models.BucketImages)
	assert.NoError(t, v.Validate(ctx, ok))

	badBucket := validUpload("videos")
	assert.ErrorIs(t, v.Validate(ctx, badBucket), ErrUnknownBucket)

	noData := validUpload(models.BucketAudios)
	noData.Data = nil
	assert.ErrorIs(t, v.Validate(ctx, &noData), ErrMissingData)

	noOwner := validUpload(models.BucketAudios)
	noOwner.OwnerID = 0
	assert.ErrorIs(t, v.Validate(ctx, noOwner), ErrInvalidOwnerID)
}
