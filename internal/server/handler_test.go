package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/observability"
	"resumeforge/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := forgeErrors.NewLogger(slog.LevelError)
	store := session.NewStore(time.Minute, time.Minute, logger)
	t.Cleanup(store.Close)

	return &Server{
		AppConfig:      &config.Config{},
		MaxUploadBytes: 10 << 20,
		SessionStore:   store,
		OutputDir:      t.TempDir(),
		Logger:         logger,
	}
}

func newTestObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false},
		&config.Config{},
	)
	if err != nil {
		t.Fatalf("NewObservabilityManager failed: %v", err)
	}
	return om
}

func multipartBody(t *testing.T, jobDescription string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if jobDescription != "" {
		if err := writer.WriteField("job_description", jobDescription); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("part.Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close failed: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestProcessHandlerMissingJobDescription(t *testing.T) {
	s := newTestServer(t)
	handler := s.createProcessHandler(newTestObservability(t))

	body, contentType := multipartBody(t, "", "resume.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeErrorResponse(t, rec)
	if resp.Error != forgeErrors.ErrCodeMissingJobText {
		t.Errorf("expected error code %s, got %s", forgeErrors.ErrCodeMissingJobText, resp.Error)
	}
}

func TestProcessHandlerRejectsNonPDFUpload(t *testing.T) {
	s := newTestServer(t)
	handler := s.createProcessHandler(newTestObservability(t))

	body, contentType := multipartBody(t, "Backend engineer role", "resume.docx", []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeErrorResponse(t, rec)
	if resp.Error != forgeErrors.ErrCodeInvalidFileType {
		t.Errorf("expected error code %s, got %s", forgeErrors.ErrCodeInvalidFileType, resp.Error)
	}
}

func TestProcessHandlerMissingResumeWithoutSession(t *testing.T) {
	s := newTestServer(t)
	handler := s.createProcessHandler(newTestObservability(t))

	body, contentType := multipartBody(t, "Backend engineer role", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeErrorResponse(t, rec)
	if resp.Error != forgeErrors.ErrCodeMissingResume {
		t.Errorf("expected error code %s, got %s", forgeErrors.ErrCodeMissingResume, resp.Error)
	}
}

func TestProcessHandlerRejectsNonMultipart(t *testing.T) {
	s := newTestServer(t)
	handler := s.createProcessHandler(newTestObservability(t))

	req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewBufferString(`{"job_description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadHandlerRejectsTraversal(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		"../secrets.pdf",
		"..%2Fsecrets.pdf",
		"notes.txt",
		"cover_letter_abc.pdf", // wrong prefix for the resume route
		"resume_abc.exe",
	}

	for _, filename := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/download/resume/x", nil)
		req.SetPathValue("filename", filename)

		s.downloadResumeHandler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("filename %q: expected 400, got %d", filename, rec.Code)
		}
	}
}

func TestDownloadHandlerMissingFile(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/resume/x", nil)
	req.SetPathValue("filename", "resume_00000000-0000-0000-0000-000000000000.pdf")

	s.downloadResumeHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDownloadHandlerServesGeneratedFile(t *testing.T) {
	s := newTestServer(t)

	filename := "cover_letter_11111111-2222-3333-4444-555555555555.pdf"
	content := []byte("%PDF-1.4 test")
	if err := os.WriteFile(filepath.Join(s.OutputDir, filename), content, 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/cover-letter/x", nil)
	req.SetPathValue("filename", filename)

	s.downloadCoverLetterHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="`+filename+`"` {
		t.Errorf("unexpected Content-Disposition: %s", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Error("served content does not match file content")
	}
}

func TestClearResumeHandler(t *testing.T) {
	s := newTestServer(t)

	token, err := s.SessionStore.NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	s.SessionStore.Put(token, session.Entry{ResumeText: "text", FileName: "resume.pdf"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clear-resume", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})

	s.clearResumeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ClearResumeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected acknowledgement message")
	}
	if _, ok := s.SessionStore.Get(token); ok {
		t.Error("session entry should have been deleted")
	}
}

func TestResolveResumeTextSessionFallback(t *testing.T) {
	s := newTestServer(t)

	token, err := s.SessionStore.NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	s.SessionStore.Put(token, session.Entry{ResumeText: "cached resume text", FileName: "resume.pdf"})

	body, contentType := multipartBody(t, "Backend engineer role", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	if err := req.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}

	text, cached, err := s.resolveResumeText(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("resolveResumeText failed: %v", err)
	}
	if text != "cached resume text" {
		t.Errorf("unexpected resume text: %q", text)
	}
	if !cached {
		t.Error("session fallback should report the resume as cached")
	}
}

func TestCacheResumeIssuesCookieAndStoresEntry(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/process", nil)

	entry := session.Entry{ResumeText: "extracted text", FileName: "resume.pdf"}
	if !s.cacheResume(rec, req, entry) {
		t.Fatal("cacheResume should report the entry as stored")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected a %s cookie, got %v", sessionCookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	got, ok := s.SessionStore.Get(cookies[0].Value)
	if !ok {
		t.Fatal("entry should be retrievable with the issued token")
	}
	if got.ResumeText != entry.ResumeText {
		t.Errorf("unexpected cached text: %q", got.ResumeText)
	}
}

func TestCacheResumeReusesExistingToken(t *testing.T) {
	s := newTestServer(t)

	token, err := s.SessionStore.NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})

	if !s.cacheResume(rec, req, session.Entry{ResumeText: "updated text"}) {
		t.Fatal("cacheResume should report the entry as stored")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no new cookie should be issued when the request carries one")
	}
	got, ok := s.SessionStore.Get(token)
	if !ok || got.ResumeText != "updated text" {
		t.Errorf("entry should be stored under the existing token, got %v ok=%v", got, ok)
	}
}

func TestBasicAuthMiddlewareDisabled(t *testing.T) {
	s := newTestServer(t)

	called := false
	handler := s.basicAuthMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("handler should be called when basic auth is not configured")
	}
}

func TestBasicAuthMiddlewareEnabled(t *testing.T) {
	s := newTestServer(t)
	s.BasicAuth = config.BasicAuthConfig{Username: "admin", Password: "secret"}

	called := false
	handler := s.basicAuthMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// No credentials
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}
	if called {
		t.Fatal("handler should not be called without credentials")
	}

	// Wrong password
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "wrong")
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong password, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not be called with wrong password")
	}

	// Correct credentials
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "secret")
	handler(rec, req)
	if !called {
		t.Error("handler should be called with valid credentials")
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.input); got != tt.expected {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
