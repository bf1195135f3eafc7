package cardex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis" or "valkey"
	addrs    []string
	password string

	keyPrefix string

	defaultPageSize  int
	maxPageSize      int
	recommendLimit   int
	recommendWeights *Weights

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey configures the client to connect to a Valkey instance.
// Valkey speaks the same wire protocol as Redis; the same store backs both.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the storage key prefix (default "cardex:").
// The prefix is process-wide: set it before the first client is created
// and use the same value across every client in the process.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPagination sets the default and maximum page size for car listings.
// Defaults: 20 and 100.
func WithPagination(defaultPageSize, maxPageSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultPageSize
		c.maxPageSize = maxPageSize
	})
}

// WithRecommendLimit sets how many recommendations a plain request returns.
// Default: 5.
func WithRecommendLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.recommendLimit = n
	})
}

// WithWeights sets the default scoring weights for recommendations.
// Defaults: price 0.3, performance 0.3, brand 0.2, tags 0.2. A per-request
// RecommendQuery.Weights still overrides these.
func WithWeights(w Weights) Option {
	return optionFunc(func(c *clientConfig) {
		c.recommendWeights = &w
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
