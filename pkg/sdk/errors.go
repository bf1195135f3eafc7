package cardex

import "github.com/kailas-cloud/cardex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrAlreadyExists  = domain.ErrAlreadyExists
	ErrCarNotFound    = domain.ErrCarNotFound
	ErrBrandNotFound  = domain.ErrBrandNotFound
	ErrEngineNotFound = domain.ErrEngineNotFound
	ErrTagNotFound    = domain.ErrTagNotFound
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrRateLimited    = domain.ErrRateLimited
)
