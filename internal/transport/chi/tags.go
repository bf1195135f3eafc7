package chi

import "net/http"

// ListTags handles GET /api/v1/tags with an optional category filter.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	counts, err := s.tags.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tagListResponse{Tags: tagCountsToResponse(counts)})
}
