// Car catalog CSV loader for cardex.
// Reads a vehicle CSV export and loads brands, cars, engines and derived
// tags into Redis through the cardex SDK. Supports dry runs, duplicate
// detection and Prometheus metrics.
//
// Usage:
//
//	carload -file cars.csv -reset -progress-every 500
//
// Env vars:
//
//	CARDEX_DB_ADDR     - Redis address (default: localhost:6379)
//	CARDEX_DB_PASSWORD - Redis password
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/rueidis"

	cardex "github.com/kailas-cloud/cardex/pkg/sdk"
)

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type config struct {
	file          string
	keyPrefix     string
	progressEvery int
	metricsPort   string
	reset         bool
	dryRun        bool
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "", "path to the vehicle CSV export (required)")
	flag.StringVar(&cfg.keyPrefix, "key-prefix", "cardex:", "storage key prefix")
	flag.IntVar(&cfg.progressEvery, "progress-every", 500, "log progress every N rows (0=off)")
	flag.StringVar(&cfg.metricsPort, "metrics-port", "9090", "Prometheus metrics port")
	flag.BoolVar(&cfg.reset, "reset", false, "wipe the catalog before loading")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "parse and validate without writing")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config) error {
	if cfg.file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	start := time.Now()

	reg := prometheus.NewRegistry()
	metrics := newLoaderMetrics(reg)
	metricsSrv := serveMetrics(cfg.metricsPort, reg)
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = metricsSrv.Shutdown(shutCtx)
	}()

	client, err := connectCardex(ctx, cfg, reg)
	if err != nil {
		return err
	}
	defer client.Close()

	startRedisPoller(ctx, metrics, cfg)

	report, err := stageImport(ctx, client, cfg, metrics)
	if err != nil {
		return err
	}

	counts := stageVerify(ctx, client)

	stageReport(report, counts, start)

	return nil
}

func connectCardex(ctx context.Context, cfg config, reg *prometheus.Registry) (*cardex.Client, error) {
	log.Println("=== Stage 1: Connect ===")

	addr := env("CARDEX_DB_ADDR", "localhost:6379")
	password := env("CARDEX_DB_PASSWORD", "")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := []cardex.Option{
		cardex.WithRedis(addr, password),
		cardex.WithLogger(logger),
		cardex.WithPrometheus(reg),
	}
	if cfg.keyPrefix != "" {
		opts = append(opts, cardex.WithKeyPrefix(cfg.keyPrefix))
	}

	client, err := cardex.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cardex connect: %w", err)
	}

	health := client.Health(ctx)
	if health.Status != "ok" {
		log.Printf("warning: catalog health is %q: %v", health.Status, health.Checks)
	} else {
		log.Printf("connected to %s", addr)
	}
	return client, nil
}

func startRedisPoller(ctx context.Context, metrics *loaderMetrics, cfg config) {
	addr := env("CARDEX_DB_ADDR", "localhost:6379")
	password := env("CARDEX_DB_PASSWORD", "")

	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
	if err != nil {
		log.Printf("warning: cannot connect rueidis for metrics: %v", err)
		return
	}

	poller := &redisPoller{
		client:   redisClient,
		metrics:  metrics,
		indexes:  []string{"cars", "brands", "tags"},
		interval: 30 * time.Second,
		prefix:   cfg.keyPrefix,
	}
	poller.Start(ctx)
}

func stageImport(
	ctx context.Context,
	client *cardex.Client,
	cfg config,
	metrics *loaderMetrics,
) (cardex.ImportReport, error) {
	log.Println("=== Stage 2: Import ===")

	f, err := os.Open(cfg.file)
	if err != nil {
		return cardex.ImportReport{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	if cfg.dryRun {
		log.Println("dry run: nothing will be written")
	}

	report, err := client.Import().Run(ctx, f, cardex.ImportOptions{
		Reset:         cfg.reset,
		DryRun:        cfg.dryRun,
		ProgressEvery: cfg.progressEvery,
	})
	if err != nil {
		return report, fmt.Errorf("import %s: %w", cfg.file, err)
	}

	metrics.recordReport(report)
	log.Printf("import %s done: %d rows in %s", report.RunID, report.Rows, report.Elapsed.Round(time.Millisecond))
	return report, nil
}

type catalogCounts struct {
	brands int
	cars   int
	tags   int
	health string
}

func stageVerify(ctx context.Context, client *cardex.Client) catalogCounts {
	log.Println("=== Stage 3: Verify ===")

	counts := catalogCounts{}
	counts.brands, _ = client.Brands().Count(ctx)

	if page, err := client.Cars().Query().Limit(1).Do(ctx); err == nil {
		counts.cars = page.Total
	}
	if tags, err := client.Tags().List(ctx, ""); err == nil {
		counts.tags = len(tags)
	}
	counts.health = client.Health(ctx).Status

	log.Printf("catalog holds %d cars across %d brands, %d distinct tags",
		counts.cars, counts.brands, counts.tags)
	return counts
}

func stageReport(report cardex.ImportReport, counts catalogCounts, start time.Time) {
	log.Println("=== Stage 4: Report ===")

	elapsed := time.Since(start)
	rate := 0.0
	if report.Elapsed > 0 {
		rate = float64(report.Rows) / report.Elapsed.Seconds()
	}

	log.Printf("DONE in %s", elapsed.Round(time.Millisecond))
	log.Printf("  rows: %d (%d created, %d duplicates, %d skipped, %d failed)",
		report.Rows, report.Created, report.Duplicates, report.Skipped, report.Failed)
	log.Printf("  engines: %d", report.Engines)
	log.Printf("  rate: %.0f rows/sec", rate)
	log.Printf("  catalog: %d cars, %d brands, health %s",
		counts.cars, counts.brands, counts.health)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
