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
	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/config"
	"github.com/collabdays/peoplefinder/internal/db"
	dbRedis "github.com/collabdays/peoplefinder/internal/db/redis"
	logpkg "github.com/collabdays/peoplefinder/internal/logger"
	"github.com/collabdays/peoplefinder/internal/metrics"
	"github.com/collabdays/peoplefinder/internal/repository/filtercache"
	searchrepo "github.com/collabdays/peoplefinder/internal/repository/search"
	chiTransport "github.com/collabdays/peoplefinder/internal/transport/chi"
	openaiLLM "github.com/collabdays/peoplefinder/internal/transport/openai"
	extractuc "github.com/collabdays/peoplefinder/internal/usecase/extract"
	healthuc "github.com/collabdays/peoplefinder/internal/usecase/health"
	peopleuc "github.com/collabdays/peoplefinder/internal/usecase/people"
	"github.com/collabdays/peoplefinder/internal/version"
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

	logger.Info("Starting peoplefinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("extraction_enabled", cfg.Extraction.Enabled()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
	)

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Optional filter cache store
	ctx := context.Background()
	var store db.Store
	if cfg.Cache.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	}

	// Extraction chain — composition root.
	// Pass nil interface (not typed nil pointer!) if extraction is not configured.
	var completer extractuc.Completer
	if cfg.Extraction.Enabled() {
		completer = openaiLLM.NewCompleter(&openaiLLM.Config{
			Endpoint:   cfg.Extraction.Endpoint,
			APIKey:     cfg.Extraction.APIKey,
			Deployment: cfg.Extraction.Deployment,
			APIVersion: cfg.Extraction.APIVersion,
			MaxTokens:  cfg.Extraction.MaxTokens,
			Logger:     logger,
		})
		logger.Info("Extraction provider created",
			zap.String("deployment", cfg.Extraction.Deployment))
	} else {
		logger.Warn("Extraction disabled, searching on raw query text")
	}

	var extractor peopleuc.Extractor = extractuc.New(completer, logger)
	if store != nil {
		extractor = filtercache.New(
			extractor, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.FilterCacheTotal, logger,
		)
	}

	// Search backend client
	searcher := searchrepo.NewClient(&searchrepo.Config{
		Endpoint:         cfg.Search.Endpoint,
		SelectProperties: cfg.Search.SelectProperties,
		Timeout:          time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Tokens:           searchrepo.StaticTokenProvider(cfg.Search.AccessToken),
		Logger:           logger,
	})

	// Use case services
	peopleSvc := peopleuc.New(extractor, searcher, logger)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger)

	// Create chi server
	server := chiTransport.NewServer(peopleSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
