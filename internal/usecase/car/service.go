package car

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/brand"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
)

// Service handles catalog car operations.
type Service struct {
	repo            Repository
	brands          BrandEnsurer
	engines         EngineReader
	tagger          Tagger
	defaultPageSize int
	maxPageSize     int
}

// New creates a car service.
func New(repo Repository, brands BrandEnsurer, engines EngineReader, tagger Tagger) *Service {
	return &Service{
		repo:            repo,
		brands:          brands,
		engines:         engines,
		tagger:          tagger,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// CreateInput carries the fields to create a car. The slug is derived from
// the brand and name; the brand record is ensured on the fly.
type CreateInput struct {
	BrandName   string
	Name        string
	Year        int
	Seats       string
	PriceMin    *int
	PriceMax    *int
	FuelTypes   []fuel.Type
	Performance *domcar.Performance
}

// UpdateInput carries the mutable fields for a full replace. Brand and slug
// are identity and cannot change.
type UpdateInput struct {
	Name        string
	Year        int
	Seats       string
	PriceMin    *int
	PriceMax    *int
	FuelTypes   []fuel.Type
	Performance *domcar.Performance
}

// ListQuery carries catalog list filters and paging.
type ListQuery struct {
	Search    string
	FuelCode  string
	BrandSlug string
	Year      *int
	PriceMin  *int
	PriceMax  *int
	Cursor    string
	Limit     int
}

// ListResult is one page of the catalog plus the filtered total.
type ListResult struct {
	Cars       []domcar.Car
	NextCursor string
	Total      int
}

// Create ensures the brand, stores the car and attaches its derived tags.
func (s *Service) Create(ctx context.Context, in CreateInput) (domcar.Car, error) {
	b, err := brand.New(in.BrandName)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("validate brand: %w: %w", domain.ErrInvalidInput, err)
	}
	// The stored record wins so the car carries the canonical brand name.
	b, err = s.brands.Ensure(ctx, b)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("ensure brand: %w", err)
	}

	c, err := domcar.New(b, in.Name, in.Year, in.Seats, in.PriceMin, in.PriceMax, in.FuelTypes, in.Performance)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("validate car: %w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return domcar.Car{}, fmt.Errorf("create car: %w", err)
	}
	if err := s.tagger.Sync(ctx, c, nil); err != nil {
		return domcar.Car{}, fmt.Errorf("sync tags: %w", err)
	}
	return c, nil
}

// Get retrieves a car by slug.
func (s *Service) Get(ctx context.Context, carSlug string) (domcar.Car, error) {
	c, err := s.repo.Get(ctx, carSlug)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("get car: %w", err)
	}
	return c, nil
}

// List returns one page of the catalog plus the filtered total.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if q.FuelCode != "" {
		if _, err := fuel.FromCode(q.FuelCode); err != nil {
			return ListResult{}, fmt.Errorf("validate fuel filter: %w: %w", domain.ErrInvalidInput, err)
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	f := domcar.Filter{
		Search:    q.Search,
		FuelCode:  q.FuelCode,
		BrandSlug: q.BrandSlug,
		Year:      q.Year,
		PriceMin:  q.PriceMin,
		PriceMax:  q.PriceMax,
	}

	cars, next, err := s.repo.List(ctx, f, q.Cursor, limit)
	if err != nil {
		return ListResult{}, fmt.Errorf("list cars: %w", err)
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return ListResult{}, fmt.Errorf("count cars: %w", err)
	}
	return ListResult{Cars: cars, NextCursor: next, Total: total}, nil
}

// Update replaces a car's mutable fields and resyncs its tags.
func (s *Service) Update(ctx context.Context, carSlug string, in UpdateInput) (domcar.Car, error) {
	existing, err := s.repo.Get(ctx, carSlug)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("get car: %w", err)
	}

	updated, err := existing.Update(in.Name, in.Year, in.Seats, in.PriceMin, in.PriceMax, in.FuelTypes, in.Performance)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("validate car: %w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domcar.Car{}, fmt.Errorf("update car: %w", err)
	}

	engines, err := s.engines.List(ctx, carSlug)
	if err != nil {
		return domcar.Car{}, fmt.Errorf("list engines: %w", err)
	}
	if err := s.tagger.Sync(ctx, updated, engines); err != nil {
		return domcar.Car{}, fmt.Errorf("sync tags: %w", err)
	}
	return updated, nil
}

// Delete detaches the car's tag memberships and removes the car with its
// engines.
func (s *Service) Delete(ctx context.Context, carSlug string) error {
	if err := s.tagger.Detach(ctx, carSlug); err != nil {
		return fmt.Errorf("detach tags: %w", err)
	}
	if err := s.repo.Delete(ctx, carSlug); err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}
