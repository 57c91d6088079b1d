package web

import (
	"io"
	"net/http"
	"strings"
)

// Blob proxy handlers. The backend requires the admin's bearer token on
// media endpoints, so the browser cannot fetch them directly; the panel
// streams them through the authenticated API client instead.

// handleEbookFile handles GET /files/ebooks/{id}
func handleEbookFile(w http.ResponseWriter, r *http.Request) {
	streamBlob(w, r, func() (io.ReadCloser, string, error) {
		return services.Blobs.FetchEbook(r.Context(), r.PathValue("id"))
	})
}

// handleCertificateFile handles GET /files/certificates/{id}
func handleCertificateFile(w http.ResponseWriter, r *http.Request) {
	streamBlob(w, r, func() (io.ReadCloser, string, error) {
		return services.Blobs.FetchCertificate(r.Context(), r.PathValue("id"))
	})
}

// handleAssetFile handles GET /files/assets/{path...} — receipt images and
// other backend-relative uploads.
func handleAssetFile(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	// Reject traversal before handing the path to the backend.
	if rel == "" || strings.Contains(rel, "..") {
		http.NotFound(w, r)
		return
	}
	streamBlob(w, r, func() (io.ReadCloser, string, error) {
		return services.Blobs.FetchAsset(r.Context(), rel)
	})
}

func streamBlob(w http.ResponseWriter, r *http.Request, fetch func() (io.ReadCloser, string, error)) {
	body, contentType, err := fetch()
	if err != nil {
		writeJSONError(w, err)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "no-store")
	if _, err := io.Copy(w, body); err != nil {
		// Headers are already out; nothing useful to send.
		return
	}
}
