// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// Bucket names a logical container of attachment bytes.
type Bucket string

const (
	BucketImages Bucket = "images"
	BucketAudios Bucket = "audios"
)

// LookupOrder is the order in which buckets are searched when an attachment
// is retrieved by id alone.
var LookupOrder = []Bucket{BucketImages, BucketAudios}

// Valid reports whether b is one of the known buckets.
func (b Bucket) Valid() bool {
	return b == BucketImages || b == BucketAudios
}

// BucketForKind maps the upload kind used in URLs ("image", "audio") to its bucket.
func BucketForKind(kind string) (Bucket, bool) {
	switch kind {
	case "image":
		return BucketImages, true
	case "audio":
		return BucketAudios, true
	}
	return "", false
}

// Attachment describes a stored binary blob. The bytes themselves are kept
// by the blob storage under Bucket/ID and are immutable once written.
type Attachment struct {
	ID          string    `json:"id"`
	Bucket      Bucket    `json:"bucket"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	ByteLength  int64     `json:"length"`
	OwnerID     int64     `json:"-"`
	CreatedAt   time.Time `json:"uploadDate"`
}

// Ref returns the reference form of the attachment.
func (a Attachment) Ref() AttachmentRef {
	return AttachmentRef{ID: a.ID, Bucket: a.Bucket}
}

// AttachmentRef is a weak pointer from a note to an attachment.
type AttachmentRef struct {
	ID     string
	Bucket Bucket
}

// AttachmentUpload is the input for storing new attachment bytes.
type AttachmentUpload struct {
	OwnerID     int64
	Bucket      Bucket
	Filename    string
	ContentType string
	Data        io.Reader
}

// AttachmentContent is a retrieved attachment with its byte stream.
// The caller must close Data.
type AttachmentContent struct {
	Attachment
	Data io.ReadCloser
}
