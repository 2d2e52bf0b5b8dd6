package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is the base of every field rule violation; the wrapped
	// message names the offending fields.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyTitle          = errors.New("title must not be empty")
	ErrEmptyContent        = errors.New("content must not be empty")
	ErrInvalidAttachmentID = errors.New("attachment id must be a UUID")
	ErrNegativeDuration    = errors.New("duration must not be negative")
	ErrUnknownBucket       = errors.New("unknown attachment bucket")
	ErrEmptyFilename       = errors.New("filename is required")
	ErrMissingData         = errors.New("attachment data is required")
	ErrInvalidOwnerID      = errors.New("invalid owner ID")
)
