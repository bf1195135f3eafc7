package car

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
)

// DefaultYear is assumed when a record carries no model year.
const DefaultYear = 2024

// Performance holds measured performance figures (immutable value object).
// Absent metrics are nil pointers; absence is never conflated with zero.
type Performance struct {
	topSpeedKMH     *int
	accelMinSeconds *float64
	accelMaxSeconds *float64
}

// NewPerformance validates and creates a Performance record.
func NewPerformance(topSpeedKMH *int, accelMinSeconds, accelMaxSeconds *float64) (Performance, error) {
	if topSpeedKMH != nil && *topSpeedKMH < 0 {
		return Performance{}, fmt.Errorf("top speed must be non-negative")
	}
	if accelMinSeconds != nil && *accelMinSeconds < 0 {
		return Performance{}, fmt.Errorf("acceleration must be non-negative")
	}
	if accelMaxSeconds != nil && *accelMaxSeconds < 0 {
		return Performance{}, fmt.Errorf("acceleration must be non-negative")
	}
	if accelMinSeconds != nil && accelMaxSeconds != nil && *accelMinSeconds > *accelMaxSeconds {
		return Performance{}, fmt.Errorf("acceleration min exceeds max")
	}
	return Performance{
		topSpeedKMH:     cloneInt(topSpeedKMH),
		accelMinSeconds: cloneFloat(accelMinSeconds),
		accelMaxSeconds: cloneFloat(accelMaxSeconds),
	}, nil
}

// ReconstructPerformance creates a Performance without validation (storage hydration).
func ReconstructPerformance(topSpeedKMH *int, accelMinSeconds, accelMaxSeconds *float64) Performance {
	return Performance{topSpeedKMH: topSpeedKMH, accelMinSeconds: accelMinSeconds, accelMaxSeconds: accelMaxSeconds}
}

// TopSpeedKMH returns the top speed in km/h, nil when unmeasured.
func (p Performance) TopSpeedKMH() *int { return p.topSpeedKMH }

// AccelMinSeconds returns the fastest 0-100 km/h time, nil when unmeasured.
func (p Performance) AccelMinSeconds() *float64 { return p.accelMinSeconds }

// AccelMaxSeconds returns the slowest 0-100 km/h time, nil when unmeasured.
func (p Performance) AccelMaxSeconds() *float64 { return p.accelMaxSeconds }

// HasData reports whether any metric is present.
func (p Performance) HasData() bool {
	return p.topSpeedKMH != nil || p.accelMinSeconds != nil || p.accelMaxSeconds != nil
}

// Car is the catalog aggregate root (immutable value object).
type Car struct {
	name      string
	slug      string
	brandName string
	brandSlug string
	year      int
	seats     string
	priceMin  *int
	priceMax  *int
	fuelTypes []fuel.Type
	perf      *Performance
	createdAt int64
	updatedAt int64
}

func validate(name, seats string, year int, priceMin, priceMax *int) error {
	if name == "" {
		return fmt.Errorf("car name is required")
	}
	if len(name) > 200 {
		return fmt.Errorf("car name too long (max 200)")
	}
	if len(seats) > 10 {
		return fmt.Errorf("seats too long (max 10)")
	}
	if year < 1886 || year > 2100 {
		return fmt.Errorf("year %d out of range [1886, 2100]", year)
	}
	if priceMin != nil && *priceMin < 0 {
		return fmt.Errorf("price min must be non-negative")
	}
	if priceMax != nil && *priceMax < 0 {
		return fmt.Errorf("price max must be non-negative")
	}
	if priceMin != nil && priceMax != nil && *priceMin > *priceMax {
		return fmt.Errorf("price min exceeds price max")
	}
	return nil
}

// New validates and creates a Car within a brand. The slug is derived from
// the brand and car name together, so two brands can both sell a "Continental".
// A zero year means unknown and defaults to DefaultYear.
func New(
	b brand.Brand, name string, year int, seats string,
	priceMin, priceMax *int, fuels []fuel.Type, perf *Performance,
) (Car, error) {
	name = strings.TrimSpace(name)
	seats = strings.TrimSpace(seats)
	if year == 0 {
		year = DefaultYear
	}
	if b.Slug() == "" {
		return Car{}, fmt.Errorf("brand is required")
	}
	if err := validate(name, seats, year, priceMin, priceMax); err != nil {
		return Car{}, err
	}
	now := time.Now().UnixMilli()
	return Car{
		name:      name,
		slug:      slug.Make(b.Name() + " " + name),
		brandName: b.Name(),
		brandSlug: b.Slug(),
		year:      year,
		seats:     seats,
		priceMin:  cloneInt(priceMin),
		priceMax:  cloneInt(priceMax),
		fuelTypes: fuel.Normalize(fuels),
		perf:      clonePerf(perf),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Update returns a copy with the mutable fields replaced. The slug, brand and
// creation time are identity and survive renames.
func (c Car) Update(
	name string, year int, seats string,
	priceMin, priceMax *int, fuels []fuel.Type, perf *Performance,
) (Car, error) {
	name = strings.TrimSpace(name)
	seats = strings.TrimSpace(seats)
	if year == 0 {
		year = DefaultYear
	}
	if err := validate(name, seats, year, priceMin, priceMax); err != nil {
		return Car{}, err
	}
	updated := c
	updated.name = name
	updated.year = year
	updated.seats = seats
	updated.priceMin = cloneInt(priceMin)
	updated.priceMax = cloneInt(priceMax)
	updated.fuelTypes = fuel.Normalize(fuels)
	updated.perf = clonePerf(perf)
	updated.updatedAt = time.Now().UnixMilli()
	return updated, nil
}

// Reconstruct creates a Car without validation (storage hydration).
func Reconstruct(
	name, carSlug, brandName, brandSlug string, year int, seats string,
	priceMin, priceMax *int, fuels []fuel.Type, perf *Performance,
	createdAt, updatedAt int64,
) Car {
	return Car{
		name: name, slug: carSlug, brandName: brandName, brandSlug: brandSlug,
		year: year, seats: seats, priceMin: priceMin, priceMax: priceMax,
		fuelTypes: fuels, perf: perf, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Name returns the car model name.
func (c Car) Name() string { return c.name }

// Slug returns the URL-safe identity key.
func (c Car) Slug() string { return c.slug }

// BrandName returns the denormalized brand display name.
func (c Car) BrandName() string { return c.brandName }

// BrandSlug returns the owning brand's identity key.
func (c Car) BrandSlug() string { return c.brandSlug }

// Year returns the model year.
func (c Car) Year() int { return c.year }

// Seats returns the seating description as written in the dataset ("5", "2+2").
func (c Car) Seats() string { return c.seats }

// PriceMin returns the lower price bound, nil when unknown.
func (c Car) PriceMin() *int { return c.priceMin }

// PriceMax returns the upper price bound, nil when unknown.
func (c Car) PriceMax() *int { return c.priceMax }

// FuelTypes returns the fuel codes, deduplicated and sorted.
func (c Car) FuelTypes() []fuel.Type { return c.fuelTypes }

// Performance returns the performance record, nil when none was measured.
func (c Car) Performance() *Performance { return c.perf }

// CreatedAt returns the creation timestamp (unix millis).
func (c Car) CreatedAt() int64 { return c.createdAt }

// UpdatedAt returns the last update timestamp (unix millis).
func (c Car) UpdatedAt() int64 { return c.updatedAt }

// Identity returns the lowercased "brand name" pair used for duplicate
// detection during ingestion.
func (c Car) Identity() string {
	return strings.ToLower(c.brandName + " " + c.name)
}

// AveragePrice returns (min+max)/2 when both bounds are present.
func (c Car) AveragePrice() *float64 {
	if c.priceMin == nil || c.priceMax == nil {
		return nil
	}
	avg := float64(*c.priceMin+*c.priceMax) / 2
	return &avg
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func clonePerf(p *Performance) *Performance {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
