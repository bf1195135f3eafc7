package tag

import (
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Bracket tables are ordered: the first ceiling that fits wins, the last
// entry catches everything above.

var priceBrackets = []struct {
	ceiling float64
	label   string
}{
	{30000, "Economy"},
	{60000, "Mid-Range"},
	{100000, "Premium"},
	{200000, "Luxury"},
}

// PriceBracket returns the price-range label for an average price.
func PriceBracket(avgPrice float64) string {
	for _, b := range priceBrackets {
		if avgPrice <= b.ceiling {
			return b.label
		}
	}
	return "Ultra Luxury"
}

var displacementBrackets = []struct {
	ceiling int
	label   string
}{
	{1000, "Small"},
	{1600, "Low-Mid"},
	{2500, "Mid"},
	{4000, "Large"},
	{6000, "Very Large"},
}

// DisplacementBracket returns the displacement label for a capacity in cc.
func DisplacementBracket(capacityCC int) string {
	for _, b := range displacementBrackets {
		if capacityCC <= b.ceiling {
			return b.label
		}
	}
	return "Extreme"
}

// Derive computes the complete tag set for a car and its engines, in stable
// category order, deduplicated by tag identity. Absent data simply produces
// no tag; it never fails.
func Derive(c car.Car, engines []engine.Engine) []Tag {
	var out []Tag
	seen := make(map[string]bool)
	add := func(category Category, value string) {
		id := ID(category, value)
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, Reconstruct(category, value, 0))
	}

	add(CategoryBrand, c.BrandName())

	for _, ft := range c.FuelTypes() {
		add(CategoryFuelType, ft.Name())
	}

	for _, e := range engines {
		if cfg := e.Config(); cfg != "" {
			add(CategoryEngine, cfg)
		}
	}

	if c.Seats() != "" {
		add(CategorySeats, c.Seats()+" seatings")
	}

	if lo, hi := c.PriceMin(), c.PriceMax(); lo != nil && hi != nil && *lo > 0 && *hi > 0 {
		add(CategoryPriceRange, PriceBracket(float64(*lo+*hi)/2))
	}

	for _, e := range engines {
		if cc := e.CapacityCC(); cc != nil && *cc > 0 {
			add(CategoryDisplacement, DisplacementBracket(*cc))
		}
	}

	for _, e := range engines {
		if tq := e.Torque(); tq != nil && *tq > 500 {
			add(CategoryPerformance, "High Torque")
			break
		}
	}
	if p := c.Performance(); p != nil {
		if a := p.AccelMinSeconds(); a != nil && *a > 0 && *a < 4.0 {
			add(CategoryPerformance, "Fast Acceleration")
		}
		if ts := p.TopSpeedKMH(); ts != nil && *ts > 250 {
			add(CategoryPerformance, "Top Speed")
		}
	}

	return out
}
