// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a user-owned text document with optional image and audio attachments.
type Note struct {
	// ID is the note identifier (UUID v7).
	ID string `json:"_id"`

	// OwnerID is the id of the user that created the note. It never changes.
	OwnerID int64 `json:"owner"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// Images holds ordered ids of attachments in the images bucket.
	Images []string `json:"images"`

	// Audio is the id of an attachment in the audios bucket, if any.
	Audio *string `json:"audio"`

	// Duration is the audio length in seconds.
	Duration float64 `json:"duration"`

	IsFavourite bool      `json:"isFavourite"`
	SavedAt     time.Time `json:"savedAt"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// AttachmentRefs lists every attachment the note points to, images first.
func (n Note) AttachmentRefs() []AttachmentRef {
	refs := make([]AttachmentRef, 0, len(n.Images)+1)
	for _, id := range n.Images {
		refs = append(refs, AttachmentRef{ID: id, Bucket: BucketImages})
	}
	if n.Audio != nil && *n.Audio != "" {
		refs = append(refs, AttachmentRef{ID: *n.Audio, Bucket: BucketAudios})
	}
	return refs
}

// HasImage reports whether imageID is referenced by the note.
func (n Note) HasImage(imageID string) bool {
	for _, id := range n.Images {
		if id == imageID {
			return true
		}
	}
	return false
}

// NoteUpdate is a partial update of a note. Nil fields are left untouched.
type NoteUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Audio       *string   `json:"audio,omitempty"` // "" removes the audio reference
	Duration    *float64  `json:"duration,omitempty"`
	IsFavourite *bool     `json:"isFavourite,omitempty"`
}

// IsEmpty reports whether the update sets nothing.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Images == nil &&
		u.Audio == nil && u.Duration == nil && u.IsFavourite == nil
}
