package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/MKhiriev/notes-keeper/models"
	"github.com/go-playground/validator/v10"
)

// Field name constants used to restrict validation of a models.User to a
// subset of its fields. They match the Go struct field names.
const (
	// FieldUsername targets the unique login name.
	FieldUsername = "Username"

	// FieldPassword targets the plaintext password of signup and login requests.
	FieldPassword = "Password"

	// FieldEmail targets the optional contact email.
	FieldEmail = "Email"
)

var userFields = []string{FieldUsername, FieldPassword, FieldEmail}

// NoteValidator implements the Validator interface for the request models of
// the notes API: users, note creation and update requests and attachment uploads.
//
// Struct-level rules are declared as `validate` tags on the models and
// checked with go-playground/validator; rules that depend on optional
// pointers are checked by hand.
type NoteValidator struct {
	validate *validator.Validate
}

// NewNoteValidator constructs a NoteValidator that reports field names the
// way they appear in JSON bodies.
func NewNoteValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &NoteValidator{validate: validate}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.User / *models.User (fields: FieldUsername, FieldPassword, FieldEmail)
//   - models.CreateNoteRequest / *models.CreateNoteRequest
//   - models.NoteUpdate / *models.NoteUpdate
//   - models.AttachmentUpload / *models.AttachmentUpload
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.CreateNoteRequest:
		return v.validateCreateNote(ctx, value)
	case *models.CreateNoteRequest:
		return v.validateCreateNote(ctx, *value)

	case models.NoteUpdate:
		return v.validateNoteUpdate(ctx, value)
	case *models.NoteUpdate:
		return v.validateNoteUpdate(ctx, *value)

	case models.AttachmentUpload:
		return v.validateAttachmentUpload(value, "")
	case *models.AttachmentUpload:
		return v.validateAttachmentUpload(*value, "")

	default:
		return ErrUnsupportedType
	}
}

// validateUser validates signup (all fields) and login (username and
// password) requests.
func (v *NoteValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		return translate(v.validate.StructCtx(ctx, user))
	}

	for _, field := range fields {
		if !slices.Contains(userFields, field) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return translate(v.validate.StructPartialCtx(ctx, user, fields...))
}

func (v *NoteValidator) validateCreateNote(ctx context.Context, req models.CreateNoteRequest) error {
	if req.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}

	if err := translate(v.validate.StructCtx(ctx, req)); err != nil {
		return err
	}

	for _, upload := range req.InlineImages {
		if err := v.validateAttachmentUpload(upload, models.BucketImages); err != nil {
			return err
		}
	}
	if req.InlineAudio != nil {
		if err := v.validateAttachmentUpload(*req.InlineAudio, models.BucketAudios); err != nil {
			return err
		}
	}

	return nil
}

// validateNoteUpdate checks only the fields present in the update.
func (v *NoteValidator) validateNoteUpdate(_ context.Context, update models.NoteUpdate) error {
	if update.Title != nil && *update.Title == "" {
		return ErrEmptyTitle
	}
	if update.Content != nil && *update.Content == "" {
		return ErrEmptyContent
	}
	if update.Images != nil {
		for _, id := range *update.Images {
			if err := v.validate.Var(id, "uuid"); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidAttachmentID, id)
			}
		}
	}
	if update.Audio != nil && *update.Audio != "" {
		if err := v.validate.Var(*update.Audio, "uuid"); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAttachmentID, *update.Audio)
		}
	}
	if update.Duration != nil && *update.Duration < 0 {
		return ErrNegativeDuration
	}

	return nil
}

// validateAttachmentUpload checks an upload; a non-empty want pins the bucket.
func (v *NoteValidator) validateAttachmentUpload(upload models.AttachmentUpload, want models.Bucket) error {
	if upload.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}
	if !upload.Bucket.Valid() || (want != "" && upload.Bucket != want) {
		return fmt.Errorf("%w: %q", ErrUnknownBucket, upload.Bucket)
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return ErrEmptyFilename
	}
	if upload.Data == nil {
		return ErrMissingData
	}

	return nil
}

// translate turns validator.ValidationErrors into a single ErrInvalidInput
// describing every failed field.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describe(fieldErr))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a UUID"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %q rule", field, fieldErr.Tag())
	}
}
