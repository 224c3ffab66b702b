package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbagrov/chatshell/internal/models"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	h, _, _, _ := newShell()
	authenticate(h, models.PageUpload)

	content := []byte("hello, file")
	body, contentType := multipartBody(t, "file", "notes.txt", content)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var ack struct {
		Name    string `json:"name"`
		Size    int64  `json:"size"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ack.Name != "notes.txt" {
		t.Errorf("name = %q; want %q", ack.Name, "notes.txt")
	}
	if ack.Size != int64(len(content)) {
		t.Errorf("size = %d; want %d", ack.Size, len(content))
	}
	if ack.Message != "File 'notes.txt' uploaded successfully!" {
		t.Errorf("message = %q", ack.Message)
	}
}

func TestUpload_RequiresAuth(t *testing.T) {
	h, _, _, _ := newShell()

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUpload_MissingFileField(t *testing.T) {
	h, _, _, _ := newShell()
	authenticate(h, models.PageUpload)

	body, contentType := multipartBody(t, "attachment", "notes.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}
