// Package ingest loads the car dataset CSV into the catalog.
//
// The load is lenient: a row that cannot be converted or stored is logged
// and counted, never aborts the run. Setup problems do abort: unreadable
// input, missing dataset columns, a failed reset.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Options tune one load run.
type Options struct {
	Reset         bool // truncate the catalog and rebuild indexes first
	DryRun        bool // parse and count only, no writes
	ProgressEvery int  // progress log cadence in rows, 0 disables
}

// Report summarizes one load run.
type Report struct {
	RunID      string
	Rows       int // data rows seen
	Created    int // cars stored (or buildable, on a dry run)
	Engines    int // engine rows stored
	Duplicates int // rows skipped because the car was already loaded
	Skipped    int // rows without a car or brand name
	Failed     int // rows that failed to convert or store
	Elapsed    time.Duration
}

// Service runs CSV loads. The logger may be nil; per-row outcomes are then
// only visible through the report.
type Service struct {
	brands  BrandEnsurer
	cars    CarWriter
	engines EngineWriter
	tagger  Tagger
	reset   Resetter
	log     *slog.Logger
}

// New creates an ingestion service.
func New(brands BrandEnsurer, cars CarWriter, engines EngineWriter, tagger Tagger, reset Resetter, log *slog.Logger) *Service {
	return &Service{brands: brands, cars: cars, engines: engines, tagger: tagger, reset: reset, log: log}
}

// Run loads the dataset from r. Row-level failures are counted, not
// returned; the error covers setup and context cancellation only.
func (s *Service) Run(ctx context.Context, r io.Reader, opts Options) (Report, error) {
	start := time.Now()
	rep := Report{RunID: uuid.NewString()}

	if opts.Reset && !opts.DryRun {
		if err := s.reset.Reset(ctx); err != nil {
			return rep, fmt.Errorf("reset catalog: %w", err)
		}
		s.logInfo("catalog reset", "run_id", rep.RunID)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows read as empty cells, like the dataset needs

	head, err := reader.Read()
	if err != nil {
		return rep, fmt.Errorf("read header: %w", err)
	}
	cols, err := parseHeader(head)
	if err != nil {
		return rep, err
	}

	caser := cases.Title(language.English)
	seen := make(map[string]bool)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rep.Failed++
			s.logWarn("unreadable row", "line", line, "error", err)
			continue
		}
		rep.Rows++

		name := cols.cell(rec, colName)
		brandRaw := cols.cell(rec, colBrand)
		if name == "" || brandRaw == "" {
			rep.Skipped++
			continue
		}
		key := rowKey(brandRaw, name)
		if seen[key] {
			rep.Duplicates++
			continue
		}

		engines, err := s.storeRow(ctx, parseRow(cols, rec, caser), opts.DryRun)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			rep.Duplicates++
		case err != nil:
			rep.Failed++
			s.logWarn("row failed", "line", line, "car", name, "error", err)
		default:
			seen[key] = true
			rep.Created++
			rep.Engines += engines
		}

		if opts.ProgressEvery > 0 && rep.Rows%opts.ProgressEvery == 0 {
			s.logInfo("load progress",
				"run_id", rep.RunID, "rows", rep.Rows,
				"created", rep.Created, "failed", rep.Failed)
		}
	}

	rep.Elapsed = time.Since(start)
	return rep, nil
}

// storeRow converts one parsed row into domain records and writes them.
// Returns the number of engine rows built.
func (s *Service) storeRow(ctx context.Context, row rowData, dryRun bool) (int, error) {
	b, err := brand.New(row.brandName)
	if err != nil {
		return 0, fmt.Errorf("build brand: %w", err)
	}
	if !dryRun {
		// The stored record wins so re-loads keep the first-seen spelling.
		if b, err = s.brands.Ensure(ctx, b); err != nil {
			return 0, fmt.Errorf("ensure brand: %w", err)
		}
	}

	var perf *car.Performance
	if row.topSpeed != nil || row.accelMin != nil || row.accelMax != nil {
		p, err := car.NewPerformance(row.topSpeed, row.accelMin, row.accelMax)
		if err != nil {
			return 0, fmt.Errorf("build performance: %w", err)
		}
		perf = &p
	}

	c, err := car.New(b, row.name, 0, row.seats, row.priceMin, row.priceMax, row.fuels, perf)
	if err != nil {
		return 0, fmt.Errorf("build car: %w", err)
	}
	engines, err := buildEngines(c.Slug(), row)
	if err != nil {
		return 0, fmt.Errorf("build engines: %w", err)
	}
	if dryRun {
		return len(engines), nil
	}

	if err := s.cars.Create(ctx, c); err != nil {
		return 0, fmt.Errorf("create car: %w", err)
	}
	stored := make([]engine.Engine, 0, len(engines))
	for i, e := range engines {
		se, err := s.engines.Create(ctx, e)
		if err != nil {
			return 0, fmt.Errorf("create engine %d: %w", i+1, err)
		}
		stored = append(stored, se)
	}
	if err := s.tagger.Sync(ctx, c, stored); err != nil {
		return 0, fmt.Errorf("sync tags: %w", err)
	}
	return len(stored), nil
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.log != nil {
		s.log.Info(msg, args...)
	}
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.log != nil {
		s.log.Warn(msg, args...)
	}
}
