package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
	"github.com/kailas-cloud/cardex/internal/specs"
)

// Dataset column names, fixed by the upstream CSV.
const (
	colName     = "Cars Names"
	colBrand    = "Company Names"
	colEngines  = "Engines"
	colCapacity = "CC/Battery Capacity"
	colPower    = "HorsePower"
	colSpeed    = "Total Speed"
	colAccel    = "Performance(0 - 100 )KM/H"
	colPrices   = "Cars Prices"
	colFuel     = "Fuel Types"
	colSeats    = "Seats"
	colTorque   = "Torque"
)

func requiredColumns() []string {
	return []string{
		colName, colBrand, colEngines, colCapacity, colPower,
		colSpeed, colAccel, colPrices, colFuel, colSeats, colTorque,
	}
}

// header maps column names to record positions.
type header map[string]int

func parseHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, name := range cells {
		h[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns() {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing dataset columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

// cell returns the trimmed value of a column, empty when the row is short.
func (h header) cell(rec []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// rowKey is the duplicate guard over the raw names, before canonicalization.
func rowKey(brandRaw, name string) string {
	return strings.ToLower(brandRaw) + " " + strings.ToLower(name)
}

// rowData is one dataset row with its free-text fields normalized. Nil
// members mean the dataset had nothing usable for that field.
type rowData struct {
	name      string
	brandName string
	seats     string

	priceMin *int
	priceMax *int
	fuels    []fuel.Type

	topSpeed *int
	accelMin *float64
	accelMax *float64

	configs    []specs.Engine
	capacities []int
	batteries  []int
	powers     []int
	torques    []int
}

// parseRow extracts and normalizes one record. The caser title-cases the
// brand the way the dataset's all-caps company names need.
func parseRow(h header, rec []string, caser cases.Caser) rowData {
	row := rowData{
		name:      h.cell(rec, colName),
		brandName: caser.String(h.cell(rec, colBrand)),
		seats:     h.cell(rec, colSeats),
		fuels:     specs.ParseFuelTypes(h.cell(rec, colFuel)),
		topSpeed:  specs.ParseTopSpeed(h.cell(rec, colSpeed)),
		configs:   specs.ParseEngines(h.cell(rec, colEngines)),
		powers:    specs.ParsePowerValues(h.cell(rec, colPower)),
		torques:   specs.ParsePowerValues(h.cell(rec, colTorque)),
	}
	row.priceMin, row.priceMax = specs.ParsePrice(h.cell(rec, colPrices))
	row.accelMin, row.accelMax = specs.ParseAcceleration(h.cell(rec, colAccel))
	row.capacities, row.batteries = specs.ParseCapacity(h.cell(rec, colCapacity))
	return row
}

// buildEngines turns the parallel spec lists into engine rows. The row count
// is the longest list; shorter lists contribute nil past their end. A car
// whose lists are all empty still gets one blank engine row.
func buildEngines(carSlug string, row rowData) ([]engine.Engine, error) {
	n := len(row.configs)
	for _, values := range [][]int{row.capacities, row.batteries, row.powers, row.torques} {
		if len(values) > n {
			n = len(values)
		}
	}
	if n == 0 {
		e, err := engine.New(carSlug, nil, nil, nil, nil, nil, nil, nil)
		if err != nil {
			return nil, err
		}
		return []engine.Engine{e}, nil
	}

	out := make([]engine.Engine, 0, n)
	for i := 0; i < n; i++ {
		var layout *engine.Layout
		var count *int
		var aspiration *engine.Aspiration
		if i < len(row.configs) {
			layout = row.configs[i].Layout
			count = row.configs[i].CylinderCount
			aspiration = row.configs[i].Aspiration
		}
		e, err := engine.New(carSlug, layout, count, aspiration,
			intAt(row.capacities, i), kwhAt(row.batteries, i),
			intAt(row.powers, i), intAt(row.torques, i))
		if err != nil {
			return nil, fmt.Errorf("engine %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func intAt(values []int, i int) *int {
	if i >= len(values) {
		return nil
	}
	v := values[i]
	return &v
}

func kwhAt(values []int, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	v := float64(values[i])
	return &v
}
