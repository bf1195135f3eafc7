package chi

import (
	"fmt"
	"math"

	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
	"github.com/kailas-cloud/cardex/internal/usecase/recommend"
)

// createCarRequest is the POST /cars payload. The brand is referenced by
// name and ensured on the fly; the slug is derived server-side.
type createCarRequest struct {
	Brand           string   `json:"brand" validate:"required,max=100"`
	Name            string   `json:"name" validate:"required,max=200"`
	Year            int      `json:"year" validate:"omitempty,gte=1886,lte=2100"`
	Seats           string   `json:"seats" validate:"max=10"`
	PriceMin        *int     `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax        *int     `json:"price_max" validate:"omitempty,gte=0"`
	FuelTypes       []string `json:"fuel_types" validate:"dive,oneof=P D E H C X"`
	TopSpeedKMH     *int     `json:"top_speed_kmh" validate:"omitempty,gte=0"`
	AccelMinSeconds *float64 `json:"accel_min_seconds" validate:"omitempty,gte=0"`
	AccelMaxSeconds *float64 `json:"accel_max_seconds" validate:"omitempty,gte=0"`
}

// updateCarRequest is the PUT /cars/{slug} payload. Brand and slug are
// identity and cannot change.
type updateCarRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Year            int      `json:"year" validate:"omitempty,gte=1886,lte=2100"`
	Seats           string   `json:"seats" validate:"max=10"`
	PriceMin        *int     `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax        *int     `json:"price_max" validate:"omitempty,gte=0"`
	FuelTypes       []string `json:"fuel_types" validate:"dive,oneof=P D E H C X"`
	TopSpeedKMH     *int     `json:"top_speed_kmh" validate:"omitempty,gte=0"`
	AccelMinSeconds *float64 `json:"accel_min_seconds" validate:"omitempty,gte=0"`
	AccelMaxSeconds *float64 `json:"accel_max_seconds" validate:"omitempty,gte=0"`
}

// enginePayload is the POST/PUT engine body. Every field is optional; an
// all-null payload is a legal placeholder engine.
type enginePayload struct {
	Layout        *string  `json:"layout" validate:"omitempty,oneof=I V F W R"`
	CylinderCount *int     `json:"cylinder_count" validate:"omitempty,gte=1,lte=32"`
	Aspiration    *string  `json:"aspiration" validate:"omitempty,oneof=T S W Q N"`
	CapacityCC    *int     `json:"capacity_cc" validate:"omitempty,gte=0"`
	BatteryKWH    *float64 `json:"battery_kwh" validate:"omitempty,gte=0"`
	Horsepower    *int     `json:"horsepower" validate:"omitempty,gte=0"`
	Torque        *int     `json:"torque" validate:"omitempty,gte=0"`
}

func (r createCarRequest) toInput() (caruc.CreateInput, error) {
	fuels, err := fuelsFromCodes(r.FuelTypes)
	if err != nil {
		return caruc.CreateInput{}, err
	}
	perf, err := performanceFrom(r.TopSpeedKMH, r.AccelMinSeconds, r.AccelMaxSeconds)
	if err != nil {
		return caruc.CreateInput{}, err
	}
	return caruc.CreateInput{
		BrandName:   r.Brand,
		Name:        r.Name,
		Year:        r.Year,
		Seats:       r.Seats,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		FuelTypes:   fuels,
		Performance: perf,
	}, nil
}

func (r updateCarRequest) toInput() (caruc.UpdateInput, error) {
	fuels, err := fuelsFromCodes(r.FuelTypes)
	if err != nil {
		return caruc.UpdateInput{}, err
	}
	perf, err := performanceFrom(r.TopSpeedKMH, r.AccelMinSeconds, r.AccelMaxSeconds)
	if err != nil {
		return caruc.UpdateInput{}, err
	}
	return caruc.UpdateInput{
		Name:        r.Name,
		Year:        r.Year,
		Seats:       r.Seats,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		FuelTypes:   fuels,
		Performance: perf,
	}, nil
}

func (p enginePayload) toInput() engineuc.Input {
	var layout *domeng.Layout
	if p.Layout != nil {
		l := domeng.Layout(*p.Layout)
		layout = &l
	}
	var aspiration *domeng.Aspiration
	if p.Aspiration != nil {
		a := domeng.Aspiration(*p.Aspiration)
		aspiration = &a
	}
	return engineuc.Input{
		Layout:        layout,
		CylinderCount: p.CylinderCount,
		Aspiration:    aspiration,
		CapacityCC:    p.CapacityCC,
		BatteryKWH:    p.BatteryKWH,
		Horsepower:    p.Horsepower,
		Torque:        p.Torque,
	}
}

func fuelsFromCodes(codes []string) ([]fuel.Type, error) {
	fuels := make([]fuel.Type, 0, len(codes))
	for _, code := range codes {
		t, err := fuel.FromCode(code)
		if err != nil {
			return nil, err
		}
		fuels = append(fuels, t)
	}
	return fuels, nil
}

func performanceFrom(topSpeed *int, accelMin, accelMax *float64) (*domcar.Performance, error) {
	if topSpeed == nil && accelMin == nil && accelMax == nil {
		return nil, nil
	}
	p, err := domcar.NewPerformance(topSpeed, accelMin, accelMax)
	if err != nil {
		return nil, fmt.Errorf("performance: %w", err)
	}
	return &p, nil
}

// weightSumTolerance bounds how far override weights may drift from 1.
const weightSumTolerance = 0.001

// recommendationWeights reads the optional w_* override set. All four must
// be given together, non-negative, summing to 1 within tolerance.
type recommendationWeights struct {
	Price       *float64
	Performance *float64
	Brand       *float64
	Tags        *float64
}

func (w recommendationWeights) empty() bool {
	return w.Price == nil && w.Performance == nil && w.Brand == nil && w.Tags == nil
}

func (w recommendationWeights) toWeights() (*recommend.Weights, error) {
	if w.empty() {
		return nil, nil
	}
	if w.Price == nil || w.Performance == nil || w.Brand == nil || w.Tags == nil {
		return nil, fmt.Errorf("weight overrides require all of w_price, w_performance, w_brand, w_tags")
	}
	for _, v := range []float64{*w.Price, *w.Performance, *w.Brand, *w.Tags} {
		if v < 0 {
			return nil, fmt.Errorf("weights must be non-negative")
		}
	}
	sum := *w.Price + *w.Performance + *w.Brand + *w.Tags
	if math.Abs(sum-1) > weightSumTolerance {
		return nil, fmt.Errorf("weights must sum to 1, got %g", sum)
	}
	return &recommend.Weights{
		Price:       *w.Price,
		Performance: *w.Performance,
		Brand:       *w.Brand,
		Tags:        *w.Tags,
	}, nil
}
