// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Notes are stored in the "notes" table; image references are kept as a
// JSONB array and the audio reference as a nullable UUID.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanNote reads one row laid out as noteColumns.
func scanNote(row rowScanner) (models.Note, error) {
	var (
		note   models.Note
		images []byte
		audio  sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&images,
		&audio,
		&note.Duration,
		&note.IsFavourite,
		&note.SavedAt,
	)
	if err != nil {
		return models.Note{}, err
	}

	if note.Images, err = decodeImages(images); err != nil {
		return models.Note{}, err
	}
	if audio.Valid {
		note.Audio = &audio.String
	}

	return note, nil
}

// CreateNote inserts note as given (ID and SavedAt are assigned by the
// caller) and returns the stored row.
func (n *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	images, err := encodeImages(note.Images)
	if err != nil {
		return models.Note{}, err
	}

	var audio any
	if note.Audio != nil {
		audio = nullableString(*note.Audio)
	}

	row := n.DB.QueryRowContext(ctx, createNote,
		note.ID,
		note.OwnerID,
		note.Title,
		note.Content,
		images,
		audio,
		note.Duration,
		note.IsFavourite,
		note.SavedAt,
	)

	created, err := scanNote(row)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("owner_id", note.OwnerID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// ListNotes returns every note of ownerID, newest first. The result is never nil.
func (n *noteRepository) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("owner_id", ownerID).
			Msg("failed to create query")
		return nil, err
	}

	var notes []models.Note
	err = n.withRetry(ctx, func(ctx context.Context) error {
		var queryErr error
		notes, queryErr = n.queryNotes(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("owner_id", ownerID).
			Msg("failed to list notes")
		return nil, err
	}

	return notes, nil
}

func (n *noteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// GetNote returns the note noteID of ownerID or [ErrNoteNotFound].
func (n *noteRepository) GetNote(ctx context.Context, ownerID int64, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := n.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		note, scanErr = scanNote(n.DB.QueryRowContext(ctx, getNote, noteID, ownerID))
		return scanErr
	})

	switch {
	case err == nil:
		return note, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	default:
		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Int64("owner_id", ownerID).
			Str("note_id", noteID).
			Msg("failed to get note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// UpdateNote applies a partial update. An empty update only reads the note.
func (n *noteRepository) UpdateNote(ctx context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return n.GetNote(ctx, ownerID, noteID)
	}

	query, args, err := buildUpdateNoteQuery(ownerID, noteID, update)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("owner_id", ownerID).
			Msg("failed to create query")
		return models.Note{}, err
	}

	note, err := scanNote(n.DB.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return note, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	default:
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("owner_id", ownerID).
			Str("note_id", noteID).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// DeleteNote removes the note and returns its last state so the caller can
// clean up referenced attachments.
func (n *noteRepository) DeleteNote(ctx context.Context, ownerID int64, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := scanNote(n.DB.QueryRowContext(ctx, deleteNote, noteID, ownerID))
	switch {
	case err == nil:
		return note, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	default:
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("owner_id", ownerID).
			Str("note_id", noteID).
			Msg("failed to delete note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}
