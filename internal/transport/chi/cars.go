package chi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
)

// ListCars handles GET /api/v1/cars.
func (s *Server) ListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	priceMin, err := queryInt(r, "price_min")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	priceMax, err := queryInt(r, "price_max")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	listQ := caruc.ListQuery{
		Search:    q.Get("search"),
		FuelCode:  q.Get("fuel"),
		BrandSlug: q.Get("brand"),
		Year:      year,
		PriceMin:  priceMin,
		PriceMax:  priceMax,
		Cursor:    q.Get("cursor"),
	}
	if limit != nil {
		listQ.Limit = *limit
	}

	res, err := s.cars.List(r.Context(), listQ)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items, err := s.carItems(r.Context(), res.Cars)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := carListResponse{Cars: items, Total: res.Total}
	if res.NextCursor != "" {
		resp.NextCursor = &res.NextCursor
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateCar handles POST /api/v1/cars.
func (s *Server) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req createCarRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	c, err := s.cars.Create(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	tags, err := s.tags.Tags(r.Context(), c.Slug())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, carToDetail(c, tags, nil))
}

// GetCar handles GET /api/v1/cars/{slug}.
func (s *Server) GetCar(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, err := s.cars.Get(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	tags, err := s.tags.Tags(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	engines, err := s.engines.List(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, carToDetail(c, tags, engines))
}

// UpdateCar handles PUT /api/v1/cars/{slug}.
func (s *Server) UpdateCar(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req updateCarRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	c, err := s.cars.Update(r.Context(), slug, in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	tags, err := s.tags.Tags(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	engines, err := s.engines.List(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, carToDetail(c, tags, engines))
}

// DeleteCar handles DELETE /api/v1/cars/{slug}.
func (s *Server) DeleteCar(w http.ResponseWriter, r *http.Request) {
	if err := s.cars.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recommendations handles GET /api/v1/cars/{slug}/recommendation. The
// response carries the candidate cars only; scores stay internal.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	overrides, err := queryWeights(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	scored, err := s.recommend.Recommend(r.Context(), slug, recommenduc.Query{
		Limit:   limit,
		Weights: overrides,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	cars := make([]domcar.Car, len(scored))
	for i, sc := range scored {
		cars[i] = sc.Car
	}
	items, err := s.carItems(r.Context(), cars)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationResponse{Recommendations: items})
}

// carItems loads each car's tags and builds the list payload.
func (s *Server) carItems(ctx context.Context, cars []domcar.Car) ([]carResponse, error) {
	items := make([]carResponse, len(cars))
	for i, c := range cars {
		tags, err := s.tags.Tags(ctx, c.Slug())
		if err != nil {
			return nil, err
		}
		items[i] = carToResponse(c, tags)
	}
	return items, nil
}

func queryWeights(r *http.Request) (*recommenduc.Weights, error) {
	var overrides recommendationWeights
	var err error
	if overrides.Price, err = queryFloat(r, "w_price"); err != nil {
		return nil, err
	}
	if overrides.Performance, err = queryFloat(r, "w_performance"); err != nil {
		return nil, err
	}
	if overrides.Brand, err = queryFloat(r, "w_brand"); err != nil {
		return nil, err
	}
	if overrides.Tags, err = queryFloat(r, "w_tags"); err != nil {
		return nil, err
	}
	return overrides.toWeights()
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

// queryFloat parses an optional float query parameter.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}
