package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxUploadBytes caps in-memory multipart parsing.
const maxUploadBytes = 32 << 20

// Upload handles POST /api/upload. The file is read and discarded; the
// response reports its name and size. Nothing is persisted.
func (h *ShellHandler) Upload(w http.ResponseWriter, r *http.Request) {
	token, sctx := h.context(r)
	if !sctx.Authenticated {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	h.Registry.Put(token, sctx)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":    header.Filename,
		"size":    size,
		"message": fmt.Sprintf("File '%s' uploaded successfully!", header.Filename),
	})
}
