package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/mock"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken  = "valid-token"
	testUserID = int64(7)

	testNoteID  = "0199a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	testImageID = "0199a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a01"
	testAudioID = "0199a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a02"
)

// testServices holds the gomock services behind a router built by
// newTestRouter.
type testServices struct {
	auth        *mock.MockAuthService
	notes       *mock.MockNoteService
	attachments *mock.MockAttachmentService
	appInfo     *mock.MockAppInfoService
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:        "localhost:8080",
		RequestTimeout:     5 * time.Second,
		MaxBodyBytes:       1 << 20,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
}

// newTestRouter builds the full API router over gomock services. Requests
// carrying testToken are authenticated as testUserID.
func newTestRouter(t *testing.T) (http.Handler, *testServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ts := &testServices{
		auth:        mock.NewMockAuthService(ctrl),
		notes:       mock.NewMockNoteService(ctrl),
		attachments: mock.NewMockAttachmentService(ctrl),
		appInfo:     mock.NewMockAppInfoService(ctrl),
	}
	ts.auth.EXPECT().
		ParseToken(gomock.Any(), testToken).
		Return(models.Token{UserID: testUserID}, nil).
		AnyTimes()

	h := NewHandler(&service.Services{
		AuthService:       ts.auth,
		NoteService:       ts.notes,
		AttachmentService: ts.attachments,
		AppInfoService:    ts.appInfo,
	}, testServerConfig(), logger.Nop())

	return h.Init(), ts
}

func newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func withAuth(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }
