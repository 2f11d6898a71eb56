package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListExpeditions handles GET /expeditions.
func (s *Server) ListExpeditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

// GetExpedition handles GET /expeditions/{id}.
func (s *Server) GetExpedition(w http.ResponseWriter, r *http.Request) {
	e, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondErr(w, r, err, "expedition not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}
