package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

type mockBrands struct {
	ensured      []brand.Brand
	ensureResult brand.Brand
	err          error
}

func (m *mockBrands) Ensure(_ context.Context, b brand.Brand) (brand.Brand, error) {
	if m.err != nil {
		return brand.Brand{}, m.err
	}
	m.ensured = append(m.ensured, b)
	if m.ensureResult.Slug() != "" {
		return m.ensureResult, nil
	}
	return b, nil
}

type mockCars struct {
	created  []car.Car
	failSlug string
	err      error
}

func (m *mockCars) Create(_ context.Context, c car.Car) error {
	if m.err != nil && (m.failSlug == "" || m.failSlug == c.Slug()) {
		return m.err
	}
	m.created = append(m.created, c)
	return nil
}

type mockEngines struct {
	created []engine.Engine
	err     error
}

func (m *mockEngines) Create(_ context.Context, e engine.Engine) (engine.Engine, error) {
	if m.err != nil {
		return engine.Engine{}, m.err
	}
	stored := e.WithID(len(m.created) + 1)
	m.created = append(m.created, stored)
	return stored, nil
}

type mockTagger struct {
	synced []string
	err    error
}

func (m *mockTagger) Sync(_ context.Context, c car.Car, _ []engine.Engine) error {
	if m.err != nil {
		return m.err
	}
	m.synced = append(m.synced, c.Slug())
	return nil
}

type mockResetter struct {
	calls int
	err   error
}

func (m *mockResetter) Reset(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.calls++
	return nil
}

type loadMocks struct {
	brands  *mockBrands
	cars    *mockCars
	engines *mockEngines
	tagger  *mockTagger
	reset   *mockResetter
}

func loadService() (*Service, *loadMocks) {
	m := &loadMocks{
		brands:  &mockBrands{},
		cars:    &mockCars{},
		engines: &mockEngines{},
		tagger:  &mockTagger{},
		reset:   &mockResetter{},
	}
	return New(m.brands, m.cars, m.engines, m.tagger, m.reset, nil), m
}

const csvHeader = `Cars Names,Company Names,Engines,CC/Battery Capacity,HorsePower,Total Speed,Performance(0 - 100 )KM/H,Cars Prices,Fuel Types,Seats,Torque`

// csvRow quotes and joins the 11 dataset columns in header order.
func csvRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}

func dataset(rows ...string) *strings.Reader {
	return strings.NewReader(csvHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

func porscheRow() string {
	return csvRow("911 Turbo S", "PORSCHE", "TWIN TURBO V8", "3,996 cc", "641 hp",
		"330 km/h", "2.7 sec", "$230,000", "Petrol", "4", "800 Nm")
}

func bmwRow() string {
	return csvRow("M3", "BMW", "I6", "2,993 cc", "510 hp",
		"290 km/h", "3.9 sec", "$75,000 - $85,000", "Petrol", "5", "650 Nm")
}

func TestRun_LoadsRows(t *testing.T) {
	svc, m := loadService()

	rep, err := svc.Run(context.Background(), dataset(porscheRow(), bmwRow()), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.RunID == "" {
		t.Error("expected a run id")
	}
	if rep.Rows != 2 || rep.Created != 2 || rep.Engines != 2 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if rep.Failed != 0 || rep.Skipped != 0 || rep.Duplicates != 0 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(m.cars.created) != 2 {
		t.Fatalf("expected 2 cars stored, got %d", len(m.cars.created))
	}
	first := m.cars.created[0]
	if first.Slug() != "porsche-911-turbo-s" || first.BrandName() != "Porsche" {
		t.Errorf("unexpected car: %s / %s", first.Slug(), first.BrandName())
	}
	if first.PriceMin() == nil || *first.PriceMin() != 230000 {
		t.Errorf("unexpected price: %v", first.PriceMin())
	}
	if len(m.engines.created) != 2 {
		t.Fatalf("expected 2 engines stored, got %d", len(m.engines.created))
	}
	e := m.engines.created[0]
	if e.Layout() == nil || *e.Layout() != engine.LayoutV ||
		e.CapacityCC() == nil || *e.CapacityCC() != 3996 ||
		e.Torque() == nil || *e.Torque() != 800 {
		t.Errorf("unexpected engine specs: %+v", e)
	}
	if len(m.tagger.synced) != 2 || m.tagger.synced[0] != "porsche-911-turbo-s" {
		t.Errorf("unexpected tag syncs: %v", m.tagger.synced)
	}
}

func TestRun_SkipsBlankNames(t *testing.T) {
	svc, m := loadService()
	noName := csvRow("", "PORSCHE", "", "", "", "", "", "", "", "", "")
	noBrand := csvRow("911", "  ", "", "", "", "", "", "", "", "", "")

	rep, err := svc.Run(context.Background(), dataset(noName, noBrand, porscheRow()), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Skipped != 2 || rep.Created != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(m.cars.created) != 1 {
		t.Errorf("expected 1 car stored, got %d", len(m.cars.created))
	}
}

func TestRun_SkipsDuplicates(t *testing.T) {
	svc, m := loadService()
	again := csvRow("911 turbo s", "Porsche", "V6", "", "", "", "", "$1", "Diesel", "2", "")

	rep, err := svc.Run(context.Background(), dataset(porscheRow(), again), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Created != 1 || rep.Duplicates != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(m.cars.created) != 1 {
		t.Errorf("expected the duplicate skipped, got %d cars", len(m.cars.created))
	}
}

func TestRun_LenientRowFailure(t *testing.T) {
	svc, m := loadService()
	m.cars.err = errors.New("boom")
	m.cars.failSlug = "porsche-911-turbo-s"

	rep, err := svc.Run(context.Background(), dataset(porscheRow(), bmwRow()), Options{})
	if err != nil {
		t.Fatalf("expected the run to continue, got %v", err)
	}
	if rep.Failed != 1 || rep.Created != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(m.cars.created) != 1 || m.cars.created[0].Slug() != "bmw-m3" {
		t.Errorf("expected only the second car stored, got %v", m.cars.created)
	}
}

func TestRun_ExistingCarCountsAsDuplicate(t *testing.T) {
	svc, m := loadService()
	m.cars.err = domain.ErrAlreadyExists

	rep, err := svc.Run(context.Background(), dataset(porscheRow()), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Duplicates != 1 || rep.Failed != 0 || rep.Created != 0 {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestRun_DryRun(t *testing.T) {
	svc, m := loadService()

	rep, err := svc.Run(context.Background(), dataset(porscheRow(), bmwRow()), Options{DryRun: true, Reset: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Created != 2 || rep.Engines != 2 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if m.reset.calls != 0 {
		t.Error("dry run must not reset the catalog")
	}
	if len(m.brands.ensured) != 0 || len(m.cars.created) != 0 || len(m.engines.created) != 0 || len(m.tagger.synced) != 0 {
		t.Error("dry run must not write")
	}
}

func TestRun_Reset(t *testing.T) {
	svc, m := loadService()

	rep, err := svc.Run(context.Background(), dataset(porscheRow()), Options{Reset: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.reset.calls != 1 {
		t.Errorf("expected one reset, got %d", m.reset.calls)
	}
	if rep.Created != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestRun_ResetError(t *testing.T) {
	svc, m := loadService()
	boom := errors.New("boom")
	m.reset.err = boom

	_, err := svc.Run(context.Background(), dataset(porscheRow()), Options{Reset: true})
	if !errors.Is(err, boom) {
		t.Errorf("expected the reset error surfaced, got %v", err)
	}
}

func TestRun_MissingColumns(t *testing.T) {
	svc, _ := loadService()
	in := strings.NewReader("Cars Names,Company Names\n\"911\",\"PORSCHE\"\n")

	_, err := svc.Run(context.Background(), in, Options{})
	if err == nil || !strings.Contains(err.Error(), colTorque) {
		t.Errorf("expected the missing columns named, got %v", err)
	}
}

func TestRun_HeaderOnly(t *testing.T) {
	svc, _ := loadService()

	rep, err := svc.Run(context.Background(), strings.NewReader(csvHeader+"\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Rows != 0 || rep.Created != 0 {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestRun_StoredBrandSpellingWins(t *testing.T) {
	svc, m := loadService()
	m.brands.ensureResult = brand.Reconstruct("BMW", "bmw", 0)

	_, err := svc.Run(context.Background(), dataset(bmwRow()), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.cars.created) != 1 {
		t.Fatalf("expected 1 car, got %d", len(m.cars.created))
	}
	if got := m.cars.created[0].BrandName(); got != "BMW" {
		t.Errorf("expected the stored spelling, got %q", got)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	svc, _ := loadService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, dataset(porscheRow()), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
