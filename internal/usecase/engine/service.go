package engine

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Service handles per-car engine operations. Every mutation resyncs the
// owning car's tags, since engine specs feed the derived tag set.
type Service struct {
	repo   Repository
	cars   CarReader
	tagger Tagger
}

// New creates an engine service.
func New(repo Repository, cars CarReader, tagger Tagger) *Service {
	return &Service{repo: repo, cars: cars, tagger: tagger}
}

// Input carries the engine spec fields. Every field is optional; an
// all-nil input is a legal placeholder engine.
type Input struct {
	Layout        *domeng.Layout
	CylinderCount *int
	Aspiration    *domeng.Aspiration
	CapacityCC    *int
	BatteryKWH    *float64
	Horsepower    *int
	Torque        *int
}

// List returns a car's engines ordered by ID.
func (s *Service) List(ctx context.Context, carSlug string) ([]domeng.Engine, error) {
	if _, err := s.cars.Get(ctx, carSlug); err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}

	engines, err := s.repo.List(ctx, carSlug)
	if err != nil {
		return nil, fmt.Errorf("list engines: %w", err)
	}
	return engines, nil
}

// Get retrieves one engine of a car.
func (s *Service) Get(ctx context.Context, carSlug string, id int) (domeng.Engine, error) {
	if _, err := s.cars.Get(ctx, carSlug); err != nil {
		return domeng.Engine{}, fmt.Errorf("get car: %w", err)
	}

	e, err := s.repo.Get(ctx, carSlug, id)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("get engine: %w", err)
	}
	return e, nil
}

// Create adds an engine to a car and resyncs the car's tags.
func (s *Service) Create(ctx context.Context, carSlug string, in Input) (domeng.Engine, error) {
	c, err := s.cars.Get(ctx, carSlug)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("get car: %w", err)
	}

	e, err := domeng.New(carSlug, in.Layout, in.CylinderCount, in.Aspiration, in.CapacityCC, in.BatteryKWH, in.Horsepower, in.Torque)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("validate engine: %w: %w", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("create engine: %w", err)
	}

	if err := s.resync(ctx, c); err != nil {
		return domeng.Engine{}, err
	}
	return created, nil
}

// Update replaces an engine's spec fields and resyncs the car's tags.
func (s *Service) Update(ctx context.Context, carSlug string, id int, in Input) (domeng.Engine, error) {
	c, err := s.cars.Get(ctx, carSlug)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("get car: %w", err)
	}

	existing, err := s.repo.Get(ctx, carSlug, id)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("get engine: %w", err)
	}

	updated, err := existing.Update(in.Layout, in.CylinderCount, in.Aspiration, in.CapacityCC, in.BatteryKWH, in.Horsepower, in.Torque)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("validate engine: %w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domeng.Engine{}, fmt.Errorf("update engine: %w", err)
	}

	if err := s.resync(ctx, c); err != nil {
		return domeng.Engine{}, err
	}
	return updated, nil
}

// Delete removes an engine and resyncs the car's tags.
func (s *Service) Delete(ctx context.Context, carSlug string, id int) error {
	c, err := s.cars.Get(ctx, carSlug)
	if err != nil {
		return fmt.Errorf("get car: %w", err)
	}

	if err := s.repo.Delete(ctx, carSlug, id); err != nil {
		return fmt.Errorf("delete engine: %w", err)
	}

	return s.resync(ctx, c)
}

// resync reloads the car's engines and rebuilds its tag set.
func (s *Service) resync(ctx context.Context, c car.Car) error {
	engines, err := s.repo.List(ctx, c.Slug())
	if err != nil {
		return fmt.Errorf("list engines: %w", err)
	}
	if err := s.tagger.Sync(ctx, c, engines); err != nil {
		return fmt.Errorf("sync tags: %w", err)
	}
	return nil
}
