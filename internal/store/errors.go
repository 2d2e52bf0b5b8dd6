package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a user lookup produces an empty
	// result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a note does not exist or belongs to
	// another user.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrAttachmentNotFound is returned when attachment metadata or bytes are
	// missing from the requested bucket.
	ErrAttachmentNotFound = errors.New("attachment was not found")

	// ErrInvalidBucket is returned for bucket names other than images and audios.
	ErrInvalidBucket = errors.New("invalid attachment bucket")
)

// Low-level operation errors. These are returned (or wrapped) by repository
// and blob storage methods when an operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingColumn is returned when a column value cannot be converted
	// to or from its JSON representation.
	ErrEncodingColumn = errors.New("failed to encode column value")

	// ErrBlobIO is returned when reading or writing attachment bytes fails.
	ErrBlobIO = errors.New("attachment blob i/o error")
)
