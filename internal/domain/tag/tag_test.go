package tag

import (
	"strings"
	"testing"
)

func TestCategoryName(t *testing.T) {
	cases := map[Category]string{
		CategoryBrand:        "Brand",
		CategoryFuelType:     "Fuel Type",
		CategoryEngine:       "Engine",
		CategorySeats:        "Seats",
		CategoryPriceRange:   "Price Range",
		CategoryDisplacement: "Displacement",
		CategoryPerformance:  "Performance Metrics",
	}
	for c, want := range cases {
		if got := c.Name(); got != want {
			t.Errorf("%q.Name() = %q, want %q", c, got, want)
		}
	}
}

func TestCategories_Order(t *testing.T) {
	got := Categories()
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[0] != CategoryBrand || got[6] != CategoryPerformance {
		t.Errorf("order = %v", got)
	}
	for _, c := range got {
		if !c.IsValid() {
			t.Errorf("%q.IsValid() = false", c)
		}
	}
	if Category("color").IsValid() {
		t.Error("color.IsValid() = true")
	}
}

func TestNew(t *testing.T) {
	tg, err := New(CategoryPriceRange, " Economy ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tg.Category() != CategoryPriceRange || tg.Value() != "Economy" {
		t.Errorf("got (%q, %q)", tg.Category(), tg.Value())
	}
	if tg.CreatedAt() == 0 {
		t.Error("CreatedAt not set")
	}

	if _, err := New(Category("bogus"), "x"); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := New(CategoryBrand, "  "); err == nil {
		t.Error("expected error for blank value")
	}
	if _, err := New(CategoryBrand, strings.Repeat("v", 101)); err == nil {
		t.Error("expected error for long value")
	}
}

func TestID(t *testing.T) {
	cases := []struct {
		category Category
		value    string
		want     string
	}{
		{CategoryEngine, "V8", "engine:v8"},
		{CategoryBrand, "Alfa Romeo", "brand:alfa-romeo"},
		{CategoryFuelType, "Compressed Natural Gas", "fuel_type:compressed-natural-gas"},
		{CategoryPriceRange, "Mid-Range", "price_range:mid-range"},
		{CategoryPerformance, "High Torque", "performance_metrics:high-torque"},
	}
	for _, tc := range cases {
		if got := ID(tc.category, tc.value); got != tc.want {
			t.Errorf("ID(%q, %q) = %q, want %q", tc.category, tc.value, got, tc.want)
		}
	}

	tg := Reconstruct(CategorySeats, "2 seatings", 0)
	if tg.ID() != "seats:2-seatings" {
		t.Errorf("ID() = %q", tg.ID())
	}
}
