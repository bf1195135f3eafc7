package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/config"
	dbRedis "github.com/kailas-cloud/cardex/internal/db/redis"
	"github.com/kailas-cloud/cardex/internal/domain"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
	logpkg "github.com/kailas-cloud/cardex/internal/logger"
	"github.com/kailas-cloud/cardex/internal/metrics"
	brandrepo "github.com/kailas-cloud/cardex/internal/repository/brand"
	carrepo "github.com/kailas-cloud/cardex/internal/repository/car"
	enginerepo "github.com/kailas-cloud/cardex/internal/repository/engine"
	"github.com/kailas-cloud/cardex/internal/repository/maintenance"
	tagrepo "github.com/kailas-cloud/cardex/internal/repository/tag"
	chiTransport "github.com/kailas-cloud/cardex/internal/transport/chi"
	branduc "github.com/kailas-cloud/cardex/internal/usecase/brand"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
	statsuc "github.com/kailas-cloud/cardex/internal/usecase/stats"
	tagginguc "github.com/kailas-cloud/cardex/internal/usecase/tagging"
	"github.com/kailas-cloud/cardex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cardex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Every storage key and index name derives from this prefix.
	domain.KeyPrefix = cfg.Storage.KeyPrefix

	// Valkey speaks the same protocol; one rueidis store serves both drivers.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Create repositories (domain-native, no adapters)
	carRepo := carrepo.New(store)
	brandRepo := brandrepo.New(store)
	engineRepo := enginerepo.New(store)
	tagRepo := tagrepo.New(store)
	maintRepo := maintenance.New(store, carRepo, brandRepo, tagRepo)

	if err := carRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure cars index", zap.Error(err))
	}
	if err := brandRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure brands index", zap.Error(err))
	}
	if err := tagRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure tags index", zap.Error(err))
	}
	logger.Info("Search indexes ready")

	// Create use case services
	taggingSvc := tagginguc.New(tagRepo, domtag.Derive)
	carSvc := caruc.New(carRepo, brandRepo, engineRepo, taggingSvc).
		WithPagination(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
	engineSvc := engineuc.New(engineRepo, carRepo, taggingSvc)
	brandSvc := branduc.New(brandRepo)
	statsSvc := statsuc.New(brandRepo, carRepo, engineRepo, tagRepo)
	recommendSvc := recommenduc.New(carRepo, tagRepo,
		recommenduc.WithLimit(cfg.Catalog.RecommendLimit))
	healthSvc := healthuc.New(store, maintRepo)

	// Create chi server
	server := chiTransport.NewServer(
		carSvc, engineSvc, brandSvc, taggingSvc, statsSvc, recommendSvc, healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAgeSec,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSec)*time.Second))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]map[string]string{
						"error": {
							"code":    "internal_error",
							"message": "internal error",
						},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
