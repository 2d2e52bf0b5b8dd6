package adapter

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [NotesAPI].
// address may omit the scheme, "http" is assumed then.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (NotesAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Signup implements [NotesAPI]. It POSTs the credentials to
// /api/auth/signup and keeps the token of the response body.
func (h *httpServerAdapter) Signup(ctx context.Context, user models.User) (string, error) {
	return h.authenticate(ctx, "/api/auth/signup", user)
}

// Login implements [NotesAPI]. It POSTs the credentials to /api/auth/login
// and keeps the token of the response body.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (string, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (string, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(user).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if authResp.Token == "" {
		return "", fmt.Errorf("%s: empty token in response", path)
	}

	h.SetToken(authResp.Token)
	h.logger.Debug().Str("username", user.Username).Str("path", path).Msg("authenticated")

	return authResp.Token, nil
}

func (h *httpServerAdapter) Verify(ctx context.Context) (models.VerifyResponse, error) {
	var verifyResp models.VerifyResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&verifyResp).
		SetError(&verifyResp).
		Get("/api/auth/verify")
	if err != nil {
		return models.VerifyResponse{}, fmt.Errorf("verify request: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return verifyResp, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyResponse{}, err
	}

	return verifyResp, nil
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (models.User, error) {
	var dashboard models.DashboardResponse
	if err := h.doJSON(h.authedRequest(ctx).SetResult(&dashboard), http.MethodGet, "/api/auth/dashboard"); err != nil {
		return models.User{}, err
	}
	return dashboard.User, nil
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	var note models.Note

	r := h.authedRequest(ctx).SetResult(&note)
	if len(req.InlineImages) == 0 && req.InlineAudio == nil {
		r.SetBody(req)
	} else {
		fields := url.Values{}
		fields.Set("title", req.Title)
		fields.Set("content", req.Content)
		fields.Set("duration", strconv.FormatFloat(req.Duration, 'f', -1, 64))
		for _, id := range req.Images {
			fields.Add("images", id)
		}
		if req.Audio != nil {
			fields.Set("audio", *req.Audio)
		}
		r.SetFormDataFromValues(fields)

		for _, img := range req.InlineImages {
			r.SetMultipartField("images", img.Filename, img.ContentType, img.Data)
		}
		if req.InlineAudio != nil {
			r.SetMultipartField("audio", req.InlineAudio.Filename, req.InlineAudio.ContentType, req.InlineAudio.Data)
		}
	}

	if err := h.doJSON(r, http.MethodPost, "/api/notes"); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := h.doJSON(h.authedRequest(ctx).SetResult(&notes), http.MethodGet, "/api/notes"); err != nil {
		return nil, err
	}
	return notes, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, noteID string, update models.NoteUpdate) (models.Note, error) {
	var note models.Note
	r := h.authedRequest(ctx).SetBody(update).SetResult(&note)
	if err := h.doJSON(r, http.MethodPut, "/api/notes/"+url.PathEscape(noteID)); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (h *httpServerAdapter) SetFavourite(ctx context.Context, noteID string, isFavourite bool) (models.Note, error) {
	var note models.Note
	r := h.authedRequest(ctx).
		SetBody(models.FavouriteRequest{IsFavourite: &isFavourite}).
		SetResult(&note)
	if err := h.doJSON(r, http.MethodPatch, "/api/notes/"+url.PathEscape(noteID)+"/favourite"); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, noteID string) error {
	return h.doJSON(h.authedRequest(ctx), http.MethodDelete, "/api/notes/"+url.PathEscape(noteID))
}

func (h *httpServerAdapter) RemoveImage(ctx context.Context, noteID, imageID string) (models.Note, error) {
	var note models.Note
	path := "/api/notes/" + url.PathEscape(noteID) + "/images/" + url.PathEscape(imageID)
	if err := h.doJSON(h.authedRequest(ctx).SetResult(&note), http.MethodDelete, path); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (h *httpServerAdapter) UploadAttachment(ctx context.Context, kind, filename, contentType string, data io.Reader) (models.UploadResponse, error) {
	var uploaded models.UploadResponse
	r := h.authedRequest(ctx).
		SetMultipartField("file", filename, contentType, data).
		SetResult(&uploaded)
	if err := h.doJSON(r, http.MethodPost, "/api/notes/upload/"+url.PathEscape(kind)); err != nil {
		return models.UploadResponse{}, err
	}
	return uploaded, nil
}

// DownloadAttachment implements [NotesAPI]. The body is not buffered; it is
// handed to the caller as the Data of the returned content.
func (h *httpServerAdapter) DownloadAttachment(ctx context.Context, id string) (models.AttachmentContent, error) {
	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		Get("/api/notes/file/" + url.PathEscape(id))
	if err != nil {
		return models.AttachmentContent{}, fmt.Errorf("download request: %w", err)
	}

	body := resp.RawBody()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		defer body.Close()
		payload, _ := io.ReadAll(body)
		return models.AttachmentContent{}, mapStatus(resp.StatusCode(), payload)
	}

	attachment := models.Attachment{
		ID:          id,
		ContentType: resp.Header().Get("Content-Type"),
		ByteLength:  resp.RawResponse.ContentLength,
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil {
		attachment.Filename = params["filename"]
	}

	return models.AttachmentContent{Attachment: attachment, Data: body}, nil
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.AuthR(h.Token()).SetContext(ctx)
}

func (h *httpServerAdapter) doJSON(r *resty.Request, method, path string) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return err
	}
	return nil
}
