// Package chi exposes the catalog over a chi-routed JSON API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain"
	branduc "github.com/kailas-cloud/cardex/internal/usecase/brand"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
	statsuc "github.com/kailas-cloud/cardex/internal/usecase/stats"
	tagginguc "github.com/kailas-cloud/cardex/internal/usecase/tagging"
)

// Error codes carried in the response envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeCarNotFound      = "car_not_found"
	codeBrandNotFound    = "brand_not_found"
	codeEngineNotFound   = "engine_not_found"
	codeTagNotFound      = "tag_not_found"
	codeNotFound         = "not_found"
	codeAlreadyExists    = "already_exists"
	codeRateLimited      = "rate_limited"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the catalog services behind the HTTP handlers.
type Server struct {
	cars          *caruc.Service
	engines       *engineuc.Service
	brands        *branduc.Service
	tags          *tagginguc.Service
	stats         *statsuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	cars *caruc.Service,
	engines *engineuc.Service,
	brands *branduc.Service,
	tags *tagginguc.Service,
	stats *statsuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		cars:      cars,
		engines:   engines,
		brands:    brands,
		tags:      tags,
		stats:     stats,
		recommend: recommend,
		health:    health,
		logger:    logger,
		validate:  validator.New(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCarNotFound, http.StatusNotFound, codeCarNotFound),
		sentinelHandler(domain.ErrBrandNotFound, http.StatusNotFound, codeBrandNotFound),
		sentinelHandler(domain.ErrEngineNotFound, http.StatusNotFound, codeEngineNotFound),
		sentinelHandler(domain.ErrTagNotFound, http.StatusNotFound, codeTagNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
	return s
}

// Routes mounts every API route on a fresh router. Middleware is the
// composition root's concern.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cars", func(r chi.Router) {
			r.Get("/", s.ListCars)
			r.Post("/", s.CreateCar)
			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", s.GetCar)
				r.Put("/", s.UpdateCar)
				r.Delete("/", s.DeleteCar)
				r.Get("/recommendation", s.Recommendations)
				r.Route("/engines", func(r chi.Router) {
					r.Get("/", s.ListEngines)
					r.Post("/", s.CreateEngine)
					r.Get("/{id}", s.GetEngine)
					r.Put("/{id}", s.UpdateEngine)
					r.Delete("/{id}", s.DeleteEngine)
				})
			})
		})
		r.Route("/brands", func(r chi.Router) {
			r.Get("/", s.ListBrands)
			r.Get("/{slug}", s.GetBrand)
		})
		r.Get("/tags", s.ListTags)
	})

	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeValid parses and validates a JSON body, writing the 400 itself.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return false
	}
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCarNotFound,
		domain.ErrBrandNotFound,
		domain.ErrEngineNotFound,
		domain.ErrTagNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
	}})
}
