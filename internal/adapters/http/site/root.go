// Package site serves the embedded student-facing web page.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// IndexPath is where the root path redirects to.
const IndexPath = "/static/index.html"

// ErrServe is returned when an embedded asset cannot be read.
var ErrServe = errors.New("site serve failed")

// Register attaches the root redirect and the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", NewRootHandler().HandleRoot)
	// http.FileServer redirects ".../index.html" to its directory, so the
	// page itself is served directly.
	mux.HandleFunc("GET "+IndexPath, HandleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler redirects the bare root to the activities page.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleIndex serves the embedded index page.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(body))
}
