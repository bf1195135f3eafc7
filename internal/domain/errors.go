package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCarNotFound signals a missing car.
	ErrCarNotFound = errors.New("car not found")
	// ErrBrandNotFound signals a missing brand.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrEngineNotFound signals a missing engine.
	ErrEngineNotFound = errors.New("engine not found")
	// ErrTagNotFound signals a missing tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrInvalidInput signals a request that fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
