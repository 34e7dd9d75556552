// Package web serves the embedded single-page UI for the playlist recommender.
//
// The UI is a static HTML page that talks to the JSON API under /api. It is
// embedded into the binary so the server ships as a single artifact.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexPage []byte

// Handler serves the UI at the root path.
type Handler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *Handler) Routes() []string {
	return []string{"/"}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}
