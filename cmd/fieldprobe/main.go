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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/config"
	dbRedis "github.com/kailas-cloud/fieldprobe/internal/db/redis"
	logpkg "github.com/kailas-cloud/fieldprobe/internal/logger"
	"github.com/kailas-cloud/fieldprobe/internal/metrics"
	documentrepo "github.com/kailas-cloud/fieldprobe/internal/repository/document"
	mappingrepo "github.com/kailas-cloud/fieldprobe/internal/repository/mapping"
	samplerepo "github.com/kailas-cloud/fieldprobe/internal/repository/sample"
	chiTransport "github.com/kailas-cloud/fieldprobe/internal/transport/chi"
	openaiDesc "github.com/kailas-cloud/fieldprobe/internal/transport/openai"
	aliasuc "github.com/kailas-cloud/fieldprobe/internal/usecase/alias"
	describeuc "github.com/kailas-cloud/fieldprobe/internal/usecase/describe"
	documentuc "github.com/kailas-cloud/fieldprobe/internal/usecase/document"
	healthuc "github.com/kailas-cloud/fieldprobe/internal/usecase/health"
	inferenceuc "github.com/kailas-cloud/fieldprobe/internal/usecase/inference"
	"github.com/kailas-cloud/fieldprobe/internal/version"
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

	logger.Info("Starting fieldprobe API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Int("sample_size", cfg.Sampling.SampleSize),
	)

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

	// Register inference metrics explicitly (no init())
	metrics.RegisterInferenceMetrics()

	// Create repositories
	docRepo := documentrepo.New(store)
	mappingRepo := mappingrepo.New(store)
	sampleRepo := samplerepo.New(store)

	// Create use case services
	docSvc := documentuc.New(docRepo)
	aliasSvc := aliasuc.New(mappingRepo)
	inferenceSvc := inferenceuc.New(mappingRepo, sampleRepo, logger).
		WithSampling(cfg.Sampling.SampleSize, cfg.Sampling.ExampleValues)

	// Describer is optional — composition root decides based on config.
	var describeSvc *describeuc.Service
	var describerChecker healthuc.DescriberChecker
	if cfg.Describer.APIKey != "" {
		describer := openaiDesc.NewDescriber(&openaiDesc.Config{
			APIKey:   cfg.Describer.APIKey,
			BaseURL:  cfg.Describer.BaseURL,
			Model:    cfg.Describer.Model,
			Provider: "openai",
			Logger:   logger,
		})
		describeSvc = describeuc.New(describer, logger)
		describerChecker = describer
		logger.Info("Describer enabled", zap.String("model", cfg.Describer.Model))
	}

	healthSvc := healthuc.New(store, describerChecker)

	server := chiTransport.NewServer(docSvc, inferenceSvc, describeSvc, aliasSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Handle("/metrics", promhttp.Handler())
	server.Routes(r)

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

// jsonRecoverer converts panics into JSON 500 responses with a logged stacktrace.
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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
