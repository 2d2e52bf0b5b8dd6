package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/notes-keeper/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createNote = `INSERT INTO notes (id, owner_id, title, content, images, audio, duration, is_favourite, saved_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING ` + noteColumnList + `;`

	getNote = `SELECT ` + noteColumnList + `
    FROM notes
    WHERE id = $1 AND owner_id = $2;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1 AND owner_id = $2
    RETURNING ` + noteColumnList + `;`

	saveAttachment = `INSERT INTO attachments (id, bucket, filename, content_type, byte_length, owner_id, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7);`

	findAttachment = `SELECT id, bucket, filename, content_type, byte_length, owner_id, created_at
    FROM attachments
    WHERE id = $1 AND bucket = $2;`

	deleteAttachment = `DELETE FROM attachments
    WHERE id = $1 AND bucket = $2;`
)

const noteColumnList = `id, owner_id, title, content, images, audio, duration, is_favourite, saved_at`

var noteColumns = []string{"id", "owner_id", "title", "content", "images", "audio", "duration", "is_favourite", "saved_at"}

// psql is the statement builder for PostgreSQL placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListNotesQuery selects every note of ownerID, newest first.
func buildListNotesQuery(ownerID int64) (string, []any, error) {
	query, args, err := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("saved_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateNoteQuery builds an UPDATE that sets only the fields present in
// update and returns the resulting row. An empty audio reference is stored
// as NULL.
func buildUpdateNoteQuery(ownerID int64, noteID string, update models.NoteUpdate) (string, []any, error) {
	setMap := make(map[string]any, 6)

	if update.Title != nil {
		setMap["title"] = *update.Title
	}
	if update.Content != nil {
		setMap["content"] = *update.Content
	}
	if update.Images != nil {
		images, err := encodeImages(*update.Images)
		if err != nil {
			return "", nil, err
		}
		setMap["images"] = images
	}
	if update.Audio != nil {
		setMap["audio"] = nullableString(*update.Audio)
	}
	if update.Duration != nil {
		setMap["duration"] = *update.Duration
	}
	if update.IsFavourite != nil {
		setMap["is_favourite"] = *update.IsFavourite
	}

	if len(setMap) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	query, args, err := psql.
		Update("notes").
		SetMap(setMap).
		Where(sq.Eq{"id": noteID, "owner_id": ownerID}).
		Suffix("RETURNING " + noteColumnList).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCountOwnedAttachmentsQuery counts how many of ids in bucket belong to ownerID.
func buildCountOwnedAttachmentsQuery(ownerID int64, bucket models.Bucket, ids []string) (string, []any, error) {
	query, args, err := psql.
		Select("COUNT(DISTINCT id)").
		From("attachments").
		Where(sq.Eq{"owner_id": ownerID, "bucket": string(bucket), "id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// encodeImages renders image ids as a JSON array for the JSONB column.
// A nil slice is stored as an empty array.
func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}

	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	return string(data), nil
}

func decodeImages(data []byte) ([]string, error) {
	images := make([]string, 0, 2)
	if len(data) == 0 {
		return images, nil
	}

	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	return images, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
