package cardex

import (
	"context"
	"fmt"
	"io"
	"time"

	ingestuc "github.com/kailas-cloud/cardex/internal/usecase/ingest"
)

// ImportService bulk-loads the catalog from a CSV dataset.
type ImportService struct {
	svc importUseCase
	obs *observer
}

// Run loads the dataset from r. Row-level failures are counted in the
// report, not returned; the error covers setup and cancellation only.
func (s *ImportService) Run(ctx context.Context, r io.Reader, opts ImportOptions) (_ ImportReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("import.run", start, err) }()

	report, err := s.svc.Run(ctx, r, ingestuc.Options{
		Reset:         opts.Reset,
		DryRun:        opts.DryRun,
		ProgressEvery: opts.ProgressEvery,
	})
	if err != nil {
		return ImportReport{}, fmt.Errorf("import: %w", err)
	}
	return ImportReport{
		RunID:      report.RunID,
		Rows:       report.Rows,
		Created:    report.Created,
		Engines:    report.Engines,
		Duplicates: report.Duplicates,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		Elapsed:    report.Elapsed,
	}, nil
}
