package store

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/notes-keeper/models"
)

// MemoryDSN selects the in-memory backends instead of PostgreSQL and the
// filesystem. Everything is lost on restart.
const MemoryDSN = "memory://"

// memoryUserRepository is an in-memory [UserRepository].
type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]models.User
	byName map[string]int64
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:   make(map[int64]models.User),
		byName: make(map[string]int64),
	}
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byName[user.Username]; taken {
		return models.User{}, ErrUsernameAlreadyExists
	}

	m.nextID++
	user.UserID = m.nextID
	user.Password = ""
	user.CreatedAt = time.Now().UTC()

	m.byID[user.UserID] = user
	m.byName[user.Username] = user.UserID

	return user, nil
}

func (m *memoryUserRepository) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[username]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return m.byID[id], nil
}

func (m *memoryUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[userID]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

// memoryNoteRepository is an in-memory [NoteRepository].
type memoryNoteRepository struct {
	mu    sync.RWMutex
	notes map[string]models.Note
}

func NewMemoryNoteRepository() NoteRepository {
	return &memoryNoteRepository{notes: make(map[string]models.Note)}
}

func cloneNote(note models.Note) models.Note {
	if note.Images == nil {
		note.Images = []string{}
	} else {
		note.Images = slices.Clone(note.Images)
	}
	if note.Audio != nil {
		if *note.Audio == "" {
			note.Audio = nil
		} else {
			audio := *note.Audio
			note.Audio = &audio
		}
	}
	return note
}

func (m *memoryNoteRepository) CreateNote(_ context.Context, note models.Note) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.notes[note.ID]; exists {
		return models.Note{}, fmt.Errorf("%w: duplicate note id %s", ErrExecutingStatement, note.ID)
	}

	stored := cloneNote(note)
	m.notes[note.ID] = stored

	return cloneNote(stored), nil
}

func (m *memoryNoteRepository) ListNotes(_ context.Context, ownerID int64) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notes := make([]models.Note, 0, 16)
	for _, note := range m.notes {
		if note.OwnerID == ownerID {
			notes = append(notes, cloneNote(note))
		}
	}

	slices.SortFunc(notes, func(a, b models.Note) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return notes, nil
}

func (m *memoryNoteRepository) GetNote(_ context.Context, ownerID int64, noteID string) (models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	note, ok := m.notes[noteID]
	if !ok || note.OwnerID != ownerID {
		return models.Note{}, ErrNoteNotFound
	}
	return cloneNote(note), nil
}

func (m *memoryNoteRepository) UpdateNote(_ context.Context, ownerID int64, noteID string, update models.NoteUpdate) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok || note.OwnerID != ownerID {
		return models.Note{}, ErrNoteNotFound
	}

	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Images != nil {
		note.Images = *update.Images
	}
	if update.Audio != nil {
		audio := *update.Audio
		note.Audio = &audio
	}
	if update.Duration != nil {
		note.Duration = *update.Duration
	}
	if update.IsFavourite != nil {
		note.IsFavourite = *update.IsFavourite
	}

	stored := cloneNote(note)
	m.notes[noteID] = stored

	return cloneNote(stored), nil
}

func (m *memoryNoteRepository) DeleteNote(_ context.Context, ownerID int64, noteID string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok || note.OwnerID != ownerID {
		return models.Note{}, ErrNoteNotFound
	}
	delete(m.notes, noteID)

	return note, nil
}

// memoryAttachmentRepository is an in-memory [AttachmentRepository].
type memoryAttachmentRepository struct {
	mu          sync.RWMutex
	attachments map[models.AttachmentRef]models.Attachment
}

func NewMemoryAttachmentRepository() AttachmentRepository {
	return &memoryAttachmentRepository{attachments: make(map[models.AttachmentRef]models.Attachment)}
}

func (m *memoryAttachmentRepository) SaveAttachment(_ context.Context, attachment models.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.attachments[attachment.Ref()]; exists {
		return fmt.Errorf("%w: duplicate attachment id %s", ErrExecutingStatement, attachment.ID)
	}
	m.attachments[attachment.Ref()] = attachment

	return nil
}

func (m *memoryAttachmentRepository) FindAttachment(_ context.Context, id string, bucket models.Bucket) (models.Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	attachment, ok := m.attachments[models.AttachmentRef{ID: id, Bucket: bucket}]
	if !ok {
		return models.Attachment{}, ErrAttachmentNotFound
	}
	return attachment, nil
}

func (m *memoryAttachmentRepository) CountOwnedAttachments(_ context.Context, ownerID int64, bucket models.Bucket, ids []string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		attachment, ok := m.attachments[models.AttachmentRef{ID: id, Bucket: bucket}]
		if ok && attachment.OwnerID == ownerID {
			seen[id] = struct{}{}
		}
	}

	return len(seen), nil
}

func (m *memoryAttachmentRepository) DeleteAttachment(_ context.Context, id string, bucket models.Bucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref := models.AttachmentRef{ID: id, Bucket: bucket}
	if _, ok := m.attachments[ref]; !ok {
		return ErrAttachmentNotFound
	}
	delete(m.attachments, ref)

	return nil
}

// memoryBlobStorage is an in-memory [BlobStorage].
type memoryBlobStorage struct {
	mu    sync.RWMutex
	blobs map[models.AttachmentRef][]byte
}

func NewMemoryBlobStorage() BlobStorage {
	return &memoryBlobStorage{blobs: make(map[models.AttachmentRef][]byte)}
}

func (m *memoryBlobStorage) Put(ctx context.Context, bucket models.Bucket, id string, r io.Reader) (int64, error) {
	if !bucket.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
	}

	data, err := io.ReadAll(contextReader{ctx: ctx, r: r})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBlobIO, err)
	}

	m.mu.Lock()
	m.blobs[models.AttachmentRef{ID: id, Bucket: bucket}] = data
	m.mu.Unlock()

	return int64(len(data)), nil
}

func (m *memoryBlobStorage) Open(_ context.Context, bucket models.Bucket, id string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[models.AttachmentRef{ID: id, Bucket: bucket}]
	if !ok {
		return nil, ErrAttachmentNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryBlobStorage) Remove(_ context.Context, bucket models.Bucket, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref := models.AttachmentRef{ID: id, Bucket: bucket}
	if _, ok := m.blobs[ref]; !ok {
		return ErrAttachmentNotFound
	}
	delete(m.blobs, ref)

	return nil
}
