package cardex

import (
	"context"
	"fmt"

	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
)

// EngineService manages the engines of a single car.
type EngineService struct {
	carSlug string
	svc     engineUseCase
}

// List returns the car's engines ordered by ID.
func (s *EngineService) List(ctx context.Context) ([]Engine, error) {
	engines, err := s.svc.List(ctx, s.carSlug)
	if err != nil {
		return nil, fmt.Errorf("list engines: %w", err)
	}
	out := make([]Engine, len(engines))
	for i, e := range engines {
		out[i] = fromInternalEngine(e)
	}
	return out, nil
}

// Get retrieves one engine by ID.
func (s *EngineService) Get(ctx context.Context, id int) (Engine, error) {
	e, err := s.svc.Get(ctx, s.carSlug, id)
	if err != nil {
		return Engine{}, fmt.Errorf("get engine: %w", err)
	}
	return fromInternalEngine(e), nil
}

// Add attaches a new engine to the car and re-syncs the car's tags.
func (s *EngineService) Add(ctx context.Context, spec EngineSpec) (Engine, error) {
	e, err := s.svc.Create(ctx, s.carSlug, toEngineInput(spec))
	if err != nil {
		return Engine{}, fmt.Errorf("add engine: %w", err)
	}
	return fromInternalEngine(e), nil
}

// Update replaces an engine's spec and re-syncs the car's tags.
func (s *EngineService) Update(ctx context.Context, id int, spec EngineSpec) (Engine, error) {
	e, err := s.svc.Update(ctx, s.carSlug, id, toEngineInput(spec))
	if err != nil {
		return Engine{}, fmt.Errorf("update engine: %w", err)
	}
	return fromInternalEngine(e), nil
}

// Delete removes an engine and re-syncs the car's tags.
func (s *EngineService) Delete(ctx context.Context, id int) error {
	if err := s.svc.Delete(ctx, s.carSlug, id); err != nil {
		return fmt.Errorf("delete engine: %w", err)
	}
	return nil
}

func toEngineInput(spec EngineSpec) engineuc.Input {
	var layout *domeng.Layout
	if spec.Layout != nil {
		l := domeng.Layout(*spec.Layout)
		layout = &l
	}
	var aspiration *domeng.Aspiration
	if spec.Aspiration != nil {
		a := domeng.Aspiration(*spec.Aspiration)
		aspiration = &a
	}
	return engineuc.Input{
		Layout:        layout,
		CylinderCount: spec.CylinderCount,
		Aspiration:    aspiration,
		CapacityCC:    spec.CapacityCC,
		BatteryKWH:    spec.BatteryKWH,
		Horsepower:    spec.Horsepower,
		Torque:        spec.Torque,
	}
}

func fromInternalEngine(e domeng.Engine) Engine {
	var layout *EngineLayout
	if e.Layout() != nil {
		l := EngineLayout(*e.Layout())
		layout = &l
	}
	var aspiration *EngineAspiration
	if e.Aspiration() != nil {
		a := EngineAspiration(*e.Aspiration())
		aspiration = &a
	}
	return Engine{
		ID:            e.ID(),
		CarSlug:       e.CarSlug(),
		Layout:        layout,
		CylinderCount: e.CylinderCount(),
		Aspiration:    aspiration,
		CapacityCC:    e.CapacityCC(),
		BatteryKWH:    e.BatteryKWH(),
		Horsepower:    e.Horsepower(),
		Torque:        e.Torque(),
		Description:   e.String(),
		CreatedAt:     e.CreatedAt(),
		UpdatedAt:     e.UpdatedAt(),
	}
}
