package httpserver

import (
	"net/http"
	"time"
)

const maxUploadBytes = 10 << 20

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// handleUpload accepts the raw image body and hands back the opaque storage
// key plus a short-lived download URL. Listings and contest photos reference
// uploads by key through their content_ref field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.uploads == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads_unavailable", "media storage is not configured")
		return
	}
	if _, ok := s.resolvePrincipal(w, r); !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()

	key, err := s.uploads.Put(r.Context(), body, r.ContentLength, contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upload_failed", "could not store upload")
		return
	}
	url, err := s.uploads.URLFor(r.Context(), key, 15*time.Minute)
	if err != nil {
		// The object is stored; the caller can still reference it by key.
		url = ""
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: url})
}
