package models

// CreateNoteRequest carries everything needed to create a note: the text
// fields, references to already uploaded attachments and files sent inline
// with a multipart request.
type CreateNoteRequest struct {
	OwnerID  int64    `json:"-"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Images   []string `json:"images" validate:"omitempty,dive,uuid"`
	Audio    *string  `json:"audio" validate:"omitempty,uuid"`
	Duration float64  `json:"duration" validate:"gte=0"`

	// InlineImages and InlineAudio are uploaded before the note is persisted.
	InlineImages []AttachmentUpload `json:"-"`
	InlineAudio  *AttachmentUpload  `json:"-"`
}

// FavouriteRequest is the body of the favourite toggle endpoint.
type FavouriteRequest struct {
	IsFavourite *bool `json:"isFavourite"`
}
