// Prometheus metrics for the catalog loader.
// Import outcomes, run duration, Redis memory and search index sizes.
package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/rueidis"

	cardex "github.com/kailas-cloud/cardex/pkg/sdk"
)

type loaderMetrics struct {
	rowsTotal    *prometheus.CounterVec
	enginesTotal prometheus.Counter
	runDuration  prometheus.Histogram

	redisMemory *prometheus.GaugeVec
	indexSize   *prometheus.GaugeVec
	indexDocs   *prometheus.GaugeVec
}

func newLoaderMetrics(reg prometheus.Registerer) *loaderMetrics {
	m := &loaderMetrics{
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carload",
			Name:      "rows_total",
			Help:      "CSV rows by import outcome",
		}, []string{"outcome"}),

		enginesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carload",
			Name:      "engines_total",
			Help:      "Engines created during import",
		}),

		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carload",
			Name:      "run_duration_seconds",
			Help:      "Import run duration",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),

		redisMemory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "carload",
			Name:      "redis_memory_bytes",
			Help:      "Redis memory usage",
		}, []string{"type"}),

		indexSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "carload",
			Name:      "index_size_bytes",
			Help:      "FT.INDEX component sizes",
		}, []string{"index", "component"}),

		indexDocs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "carload",
			Name:      "index_docs_total",
			Help:      "Number of documents in index",
		}, []string{"index"}),
	}

	reg.MustRegister(
		m.rowsTotal, m.enginesTotal, m.runDuration,
		m.redisMemory, m.indexSize, m.indexDocs,
	)

	return m
}

func (m *loaderMetrics) recordReport(r cardex.ImportReport) {
	m.rowsTotal.WithLabelValues("created").Add(float64(r.Created))
	m.rowsTotal.WithLabelValues("duplicate").Add(float64(r.Duplicates))
	m.rowsTotal.WithLabelValues("skipped").Add(float64(r.Skipped))
	m.rowsTotal.WithLabelValues("failed").Add(float64(r.Failed))
	m.enginesTotal.Add(float64(r.Engines))
	m.runDuration.Observe(r.Elapsed.Seconds())
}

// serveMetrics starts the HTTP server for Prometheus scrape.
func serveMetrics(port string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("metrics server on :%s/metrics", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	return srv
}

// redisPoller periodically samples Redis memory and index stats.
type redisPoller struct {
	client   rueidis.Client
	metrics  *loaderMetrics
	indexes  []string
	interval time.Duration
	prefix   string // key prefix, default "cardex:"
}

// Start launches the background goroutine. Stops on ctx.Done().
func (p *redisPoller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// First poll right away.
		p.poll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

func (p *redisPoller) poll(ctx context.Context) {
	p.pollMemory(ctx)
	for _, name := range p.indexes {
		p.pollIndex(ctx, name)
	}
}

func (p *redisPoller) pollMemory(ctx context.Context) {
	cmd := p.client.B().Info().Section("memory").Build()
	resp := p.client.Do(ctx, cmd)
	if resp.Error() != nil {
		return
	}
	text, _ := resp.ToString()
	fields := parseInfoFields(text)
	if v, ok := fields["used_memory"]; ok {
		p.metrics.redisMemory.WithLabelValues("used").Set(v)
	}
	if v, ok := fields["used_memory_peak"]; ok {
		p.metrics.redisMemory.WithLabelValues("peak").Set(v)
	}
	if v, ok := fields["used_memory_rss"]; ok {
		p.metrics.redisMemory.WithLabelValues("rss").Set(v)
	}
}

func (p *redisPoller) pollIndex(ctx context.Context, name string) {
	indexName := p.prefix + name + ":idx"
	cmd := p.client.B().Arbitrary("FT.INFO").Args(indexName).Build()
	resp := p.client.Do(ctx, cmd)
	if resp.Error() != nil {
		return
	}

	arr, err := resp.ToArray()
	if err != nil {
		return
	}

	// FT.INFO returns alternating key-value pairs.
	for i := 0; i+1 < len(arr); i += 2 {
		key, _ := arr[i].ToString()
		switch key {
		case "num_docs":
			val, _ := arr[i+1].AsFloat64()
			p.metrics.indexDocs.WithLabelValues(name).Set(val)
		case "inverted_sz_mb":
			val, _ := arr[i+1].AsFloat64()
			p.metrics.indexSize.WithLabelValues(name, "inverted").Set(val * 1024 * 1024)
		case "doc_table_size_mb":
			val, _ := arr[i+1].AsFloat64()
			p.metrics.indexSize.WithLabelValues(name, "data").Set(val * 1024 * 1024)
		}
	}
}

// parseInfoFields extracts numeric fields from an INFO section response.
func parseInfoFields(text string) map[string]float64 {
	fields := make(map[string]float64)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		key, raw, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			fields[key] = val
		}
	}
	return fields
}
