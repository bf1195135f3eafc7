package stats

import (
	"testing"

	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

func pricedCar(priceMin, priceMax *int) car.Car {
	return car.Reconstruct("911", "porsche-911", "Porsche", "porsche", 2024, "", priceMin, priceMax, nil, nil, 0, 0)
}

func perfCar(topSpeed *int, accelMin, accelMax *float64) car.Car {
	perf := car.ReconstructPerformance(topSpeed, accelMin, accelMax)
	return car.Reconstruct("911", "porsche-911", "Porsche", "porsche", 2024, "", nil, nil, nil, &perf, 0, 0)
}

func groupEngine(layout *engine.Layout, cylinders *int, aspiration *engine.Aspiration) engine.Engine {
	return engine.Reconstruct(1, "porsche-911", layout, cylinders, aspiration, nil, nil, nil, nil, 0, 0)
}

func TestAveragePrice(t *testing.T) {
	lo1, hi1 := 100000, 200000
	lo2, hi2 := 50000, 50000
	lo3 := 80000
	cars := []car.Car{
		pricedCar(&lo1, &hi1), // avg 150000
		pricedCar(&lo2, &hi2), // avg 50000
		pricedCar(&lo3, nil),  // one bound, excluded
		pricedCar(nil, nil),
	}

	avg := averagePrice(cars)
	if avg == nil {
		t.Fatal("expected an average")
	}
	if *avg != 100000 {
		t.Errorf("expected 100000, got %v", *avg)
	}
}

func TestAveragePrice_NoData(t *testing.T) {
	if avg := averagePrice([]car.Car{pricedCar(nil, nil)}); avg != nil {
		t.Errorf("expected nil, got %v", *avg)
	}
}

func TestAveragePerformance(t *testing.T) {
	top1, top2 := 200, 300
	min1, max1 := 3.0, 5.0
	min2 := 5.0
	cars := []car.Car{
		perfCar(&top1, &min1, &max1),
		perfCar(&top2, &min2, nil),
		pricedCar(nil, nil), // no performance record
	}

	topSpeed, accel := averagePerformance(cars)
	if topSpeed == nil || *topSpeed != 250 {
		t.Errorf("expected top speed 250, got %v", topSpeed)
	}
	// accel min mean 4, accel max mean 5 -> 4.5
	if accel == nil || *accel != 4.5 {
		t.Errorf("expected acceleration 4.5, got %v", accel)
	}
}

func TestAveragePerformance_AccelNeedsBothBounds(t *testing.T) {
	min1 := 3.0
	cars := []car.Car{perfCar(nil, &min1, nil)}

	topSpeed, accel := averagePerformance(cars)
	if topSpeed != nil {
		t.Errorf("expected nil top speed, got %v", *topSpeed)
	}
	if accel != nil {
		t.Errorf("expected nil acceleration, got %v", *accel)
	}
}

func TestPopularEngines_OrderAndLimit(t *testing.T) {
	v, i, w := engine.LayoutV, engine.LayoutInline, engine.LayoutW
	c4, c6, c8, c12 := 4, 6, 8, 12
	turbo := engine.AspirationTurbo

	var engines []engine.Engine
	for n := 0; n < 3; n++ {
		engines = append(engines, groupEngine(&v, &c8, &turbo))
	}
	for n := 0; n < 2; n++ {
		engines = append(engines, groupEngine(&v, &c6, nil))
		engines = append(engines, groupEngine(&i, &c4, nil))
	}
	engines = append(engines, groupEngine(&w, &c12, nil))

	got := popularEngines(engines, 3)
	want := []EngineCount{
		{Description: "V8 Turbocharged", Count: 3},
		{Description: "I4", Count: 2},
		{Description: "V6", Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d groups, got %d: %v", len(want), len(got), got)
	}
	for i, g := range got {
		if g != want[i] {
			t.Errorf("group %d: expected %+v, got %+v", i, want[i], g)
		}
	}
}

func TestPopularEngines_SkipsEmptyGroups(t *testing.T) {
	v := engine.LayoutV
	c8 := 8
	engines := []engine.Engine{
		groupEngine(nil, nil, nil),
		groupEngine(nil, nil, nil),
		groupEngine(&v, &c8, nil),
	}

	got := popularEngines(engines, 3)
	if len(got) != 1 {
		t.Fatalf("expected placeholder engines skipped, got %v", got)
	}
	if got[0].Description != "V8" || got[0].Count != 1 {
		t.Errorf("unexpected group: %+v", got[0])
	}
}

func TestDescribeGroup(t *testing.T) {
	tests := []struct {
		name       string
		layout     engine.Layout
		cylinders  int
		aspiration engine.Aspiration
		want       string
	}{
		{"layout and count", engine.LayoutV, 8, "", "V8"},
		{"layout only", engine.LayoutV, 0, "", "Unspecified V Engine"},
		{"count only", "", 8, "", "8-Cylinder"},
		{"full spec", engine.LayoutV, 8, engine.AspirationTwinTurbo, "V8 Twin Turbo"},
		{"aspiration only", "", 0, engine.AspirationNatural, "Naturally Aspirated"},
		{"empty", "", 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeGroup(tt.layout, tt.cylinders, tt.aspiration)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
