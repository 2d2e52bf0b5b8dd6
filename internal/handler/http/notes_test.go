package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testNote() models.Note {
	return models.Note{
		ID:       testNoteID,
		OwnerID:  testUserID,
		Title:    "groceries",
		Content:  "milk",
		Images:   []string{testImageID},
		Audio:    ptr(testAudioID),
		Duration: 3.5,
		SavedAt:  time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

// multipartBody encodes fields and files; files are keyed by form field and
// carry "filename:content-type:content".
type formFile struct {
	field, filename, contentType, content string
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestCreateNote_JSON(t *testing.T) {
	router, ts := newTestRouter(t)
	ts.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateNoteRequest) (models.Note, error) {
			assert.Equal(t, testUserID, req.OwnerID)
			assert.Equal(t, "groceries", req.Title)
			assert.Equal(t, []string{testImageID}, req.Images)
			assert.Empty(t, req.InlineImages)
			return testNote(), nil
		})

	body := fmt.Sprintf(`{"title":"groceries","content":"milk","images":[%q],"duration":3.5}`, testImageID)
	rec := serve(router, withAuth(newRequest(http.MethodPost, "/api/notes", strings.NewReader(body))))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	note := decodeBody[models.Note](t, rec)
	assert.Equal(t, testNoteID, note.ID)
	assert.False(t, note.IsFavourite)
	assert.Contains(t, rec.Body.String(), `"_id"`)
}

func TestCreateNote_Multipart(t *testing.T) {
	router, ts := newTestRouter(t)
	ts.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateNoteRequest) (models.Note, error) {
			assert.Equal(t, testUserID, req.OwnerID)
			assert.Equal(t, "voice memo", req.Title)
			assert.Equal(t, "call mom", req.Content)
			assert.InDelta(t, 12.5, req.Duration, 1e-9)

			require.Len(t, req.InlineImages, 2)
			for _, img := range req.InlineImages {
				assert.Equal(t, models.BucketImages, img.Bucket)
				assert.Equal(t, testUserID, img.OwnerID)
				assert.Equal(t, "image/png", img.ContentType)
			}
			assert.Equal(t, "a.png", req.InlineImages[0].Filename)
			assert.Equal(t, "b.png", req.InlineImages[1].Filename)

			require.NotNil(t, req.InlineAudio)
			assert.Equal(t, models.BucketAudios, req.InlineAudio.Bucket)
			data, err := io.ReadAll(req.InlineAudio.Data)
			require.NoError(t, err)
			assert.Equal(t, "mp3-bytes", string(data))

			return testNote(), nil
		})

	body, contentType := multipartBody(t,
		map[string]string{"title": "voice memo", "content": "call mom", "duration": "12.5"},
		formFile{"images", "a.png", "image/png", "png-a"},
		formFile{"image", "b.png", "image/png", "png-b"},
		formFile{"audio", "memo.mp3", "audio/mpeg", "mp3-bytes"},
	)
	req := withAuth(newRequest(http.MethodPost, "/api/notes", body))
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestNoteBodyIDs_AreCanonicalized(t *testing.T) {
	upper := strings.ToUpper

	t.Run("create", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.CreateNoteRequest) (models.Note, error) {
				assert.Equal(t, []string{testImageID}, req.Images)
				require.NotNil(t, req.Audio)
				assert.Equal(t, testAudioID, *req.Audio)
				return testNote(), nil
			})

		body := fmt.Sprintf(`{"title":"t","content":"c","images":[%q],"audio":%q}`, upper(testImageID), upper(testAudioID))
		rec := serve(router, withAuth(newRequest(http.MethodPost, "/api/notes", strings.NewReader(body))))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("update", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().UpdateNote(gomock.Any(), testUserID, testNoteID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, update models.NoteUpdate) (models.Note, error) {
				require.NotNil(t, update.Images)
				assert.Equal(t, []string{testImageID, "not-an-id"}, *update.Images)
				require.NotNil(t, update.Audio)
				assert.Equal(t, testAudioID, *update.Audio)
				return testNote(), nil
			})

		body := fmt.Sprintf(`{"images":[%q,"not-an-id"],"audio":%q}`, upper(testImageID), upper(testAudioID))
		rec := serve(router, withAuth(newRequest(http.MethodPut, "/api/notes/"+upper(testNoteID), strings.NewReader(body))))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("cleared audio stays empty", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().UpdateNote(gomock.Any(), testUserID, testNoteID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, update models.NoteUpdate) (models.Note, error) {
				require.NotNil(t, update.Audio)
				assert.Empty(t, *update.Audio)
				assert.Nil(t, update.Images)
				return testNote(), nil
			})

		rec := serve(router, withAuth(newRequest(http.MethodPut, "/api/notes/"+testNoteID, strings.NewReader(`{"audio":""}`))))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestCreateNote_MultipartReferencedIDs(t *testing.T) {
	router, ts := newTestRouter(t)
	ts.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateNoteRequest) (models.Note, error) {
			assert.Equal(t, []string{testImageID}, req.Images)
			require.NotNil(t, req.Audio)
			assert.Equal(t, testAudioID, *req.Audio)
			require.Len(t, req.InlineImages, 1)
			assert.Nil(t, req.InlineAudio)
			return testNote(), nil
		})

	body, contentType := multipartBody(t,
		map[string]string{"title": "t", "content": "c", "images": testImageID, "audio": testAudioID},
		formFile{"images", "a.png", "image/png", "png-a"},
	)
	req := withAuth(newRequest(http.MethodPost, "/api/notes", body))
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateNote_MultipartInvalidDuration(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartBody(t, map[string]string{"title": "t", "content": "c", "duration": "long"})
	req := withAuth(newRequest(http.MethodPost, "/api/notes", body))
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[models.ErrorResponse](t, rec).Error, "duration")
}

func TestCreateNote_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: title is required", service.ErrValidation), http.StatusBadRequest},
		{"foreign attachment", fmt.Errorf("%w: %w", service.ErrValidation, service.ErrForeignAttachment), http.StatusBadRequest},
		{"blob failure", fmt.Errorf("%w: disk full", store.ErrBlobIO), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ts := newTestRouter(t)
			ts.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).Return(models.Note{}, tt.err)

			rec := serve(router, withAuth(newRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"t"}`))))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListNotes(t *testing.T) {
	t.Run("notes of the caller", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().ListNotes(gomock.Any(), testUserID).Return([]models.Note{testNote()}, nil)

		rec := serve(router, withAuth(newRequest(http.MethodGet, "/api/notes", nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		notes := decodeBody[[]models.Note](t, rec)
		require.Len(t, notes, 1)
		assert.Equal(t, testNoteID, notes[0].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().ListNotes(gomock.Any(), testUserID).Return(nil, nil)

		rec := serve(router, withAuth(newRequest(http.MethodGet, "/api/notes", nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("anonymous", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, newRequest(http.MethodGet, "/api/notes", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, decodeBody[models.ErrorResponse](t, rec).Message)
	})
}

func TestUpdateNote(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().
			UpdateNote(gomock.Any(), testUserID, testNoteID, models.NoteUpdate{Title: ptr("renamed"), Audio: ptr("")}).
			Return(testNote(), nil)

		rec := serve(router, withAuth(newRequest(http.MethodPut, "/api/notes/"+testNoteID,
			strings.NewReader(`{"title":"renamed","audio":""}`))))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, withAuth(newRequest(http.MethodPut, "/api/notes/not-a-uuid", strings.NewReader(`{}`))))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("note of another user", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().UpdateNote(gomock.Any(), testUserID, testNoteID, gomock.Any()).
			Return(models.Note{}, store.ErrNoteNotFound)

		rec := serve(router, withAuth(newRequest(http.MethodPut, "/api/notes/"+testNoteID, strings.NewReader(`{"content":"x"}`))))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSetFavourite(t *testing.T) {
	t.Run("marked", func(t *testing.T) {
		router, ts := newTestRouter(t)
		note := testNote()
		note.IsFavourite = true
		ts.notes.EXPECT().SetFavourite(gomock.Any(), testUserID, testNoteID, true).Return(note, nil)

		rec := serve(router, withAuth(newRequest(http.MethodPatch, "/api/notes/"+testNoteID+"/favourite",
			strings.NewReader(`{"isFavourite":true}`))))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeBody[models.Note](t, rec).IsFavourite)
	})

	t.Run("flag is required", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, withAuth(newRequest(http.MethodPatch, "/api/notes/"+testNoteID+"/favourite",
			strings.NewReader(`{}`))))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().DeleteNote(gomock.Any(), testUserID, testNoteID).Return(nil)

		rec := serve(router, withAuth(newRequest(http.MethodDelete, "/api/notes/"+testNoteID, nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Note deleted successfully", decodeBody[models.MessageResponse](t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().DeleteNote(gomock.Any(), testUserID, testNoteID).
			Return(fmt.Errorf("error deleting note: %w", store.ErrNoteNotFound))

		rec := serve(router, withAuth(newRequest(http.MethodDelete, "/api/notes/"+testNoteID, nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRemoveImage(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		router, ts := newTestRouter(t)
		note := testNote()
		note.Images = []string{}
		ts.notes.EXPECT().RemoveImage(gomock.Any(), testUserID, testNoteID, testImageID).Return(note, nil)

		rec := serve(router, withAuth(newRequest(http.MethodDelete,
			"/api/notes/"+testNoteID+"/images/"+testImageID, nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeBody[models.Note](t, rec).Images)
	})

	t.Run("image not on note", func(t *testing.T) {
		router, ts := newTestRouter(t)
		ts.notes.EXPECT().RemoveImage(gomock.Any(), testUserID, testNoteID, testImageID).
			Return(models.Note{}, store.ErrAttachmentNotFound)

		rec := serve(router, withAuth(newRequest(http.MethodDelete,
			"/api/notes/"+testNoteID+"/images/"+testImageID, nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid image id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, withAuth(newRequest(http.MethodDelete, "/api/notes/"+testNoteID+"/images/x", nil)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
