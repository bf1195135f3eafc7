package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListEngines handles GET /api/v1/cars/{slug}/engines.
func (s *Server) ListEngines(w http.ResponseWriter, r *http.Request) {
	engines, err := s.engines.List(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]engineResponse, len(engines))
	for i, e := range engines {
		items[i] = engineToResponse(e)
	}
	writeJSON(w, http.StatusOK, engineListResponse{Engines: items})
}

// CreateEngine handles POST /api/v1/cars/{slug}/engines.
func (s *Server) CreateEngine(w http.ResponseWriter, r *http.Request) {
	var req enginePayload
	if !s.decodeValid(w, r, &req) {
		return
	}

	e, err := s.engines.Create(r.Context(), chi.URLParam(r, "slug"), req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, engineToResponse(e))
}

// GetEngine handles GET /api/v1/cars/{slug}/engines/{id}.
func (s *Server) GetEngine(w http.ResponseWriter, r *http.Request) {
	id, ok := engineID(w, r)
	if !ok {
		return
	}

	e, err := s.engines.Get(r.Context(), chi.URLParam(r, "slug"), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, engineToResponse(e))
}

// UpdateEngine handles PUT /api/v1/cars/{slug}/engines/{id}.
func (s *Server) UpdateEngine(w http.ResponseWriter, r *http.Request) {
	id, ok := engineID(w, r)
	if !ok {
		return
	}

	var req enginePayload
	if !s.decodeValid(w, r, &req) {
		return
	}

	e, err := s.engines.Update(r.Context(), chi.URLParam(r, "slug"), id, req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, engineToResponse(e))
}

// DeleteEngine handles DELETE /api/v1/cars/{slug}/engines/{id}.
func (s *Server) DeleteEngine(w http.ResponseWriter, r *http.Request) {
	id, ok := engineID(w, r)
	if !ok {
		return
	}

	if err := s.engines.Delete(r.Context(), chi.URLParam(r, "slug"), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// engineID parses the {id} route parameter, writing the 400 itself.
func engineID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "engine id must be an integer")
		return 0, false
	}
	return id, true
}
