package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListBrands handles GET /api/v1/brands.
func (s *Server) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.brands.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]brandResponse, len(brands))
	for i, b := range brands {
		items[i] = brandToResponse(b)
	}
	writeJSON(w, http.StatusOK, brandListResponse{Brands: items})
}

// GetBrand handles GET /api/v1/brands/{slug}. The detail embeds the brand's
// catalog statistics.
func (s *Server) GetBrand(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	b, err := s.brands.Get(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	st, err := s.stats.Compute(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, brandDetailResponse{
		brandResponse: brandToResponse(b),
		Statistics:    statisticsToResponse(st),
	})
}
