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
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/config"
	"github.com/mealdex/mealdex/internal/domain"
	logpkg "github.com/mealdex/mealdex/internal/logger"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/repository/embcache"
	"github.com/mealdex/mealdex/internal/repository/pg"
	reciperepo "github.com/mealdex/mealdex/internal/repository/recipe"
	searchrepo "github.com/mealdex/mealdex/internal/repository/search"
	chiTransport "github.com/mealdex/mealdex/internal/transport/chi"
	openaiEmb "github.com/mealdex/mealdex/internal/transport/openai"
	embeddinguc "github.com/mealdex/mealdex/internal/usecase/embedding"
	healthuc "github.com/mealdex/mealdex/internal/usecase/health"
	recipeuc "github.com/mealdex/mealdex/internal/usecase/recipe"
	recommenduc "github.com/mealdex/mealdex/internal/usecase/recommend"
	searchuc "github.com/mealdex/mealdex/internal/usecase/search"
	"github.com/mealdex/mealdex/internal/version"
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

	logger.Info("Starting mealdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx := context.Background()

	store, err := pg.NewStore(ctx, pg.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	if err := store.EnsureSchema(ctx, cfg.Embedding.Dimensions); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Optional Redis embedding cache
	var cacheClient rueidis.Client
	if len(cfg.Cache.Addrs) > 0 {
		cacheClient, err = rueidis.NewClient(rueidis.ClientOption{
			InitAddress: cfg.Cache.Addrs,
			Password:    cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to connect to embedding cache", zap.Error(err))
		}
		defer cacheClient.Close()
		logger.Info("Embedding cache connected", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	docEmbedder := buildEmbedder(base, cfg, cfg.Embedding.DocumentInstruction, cacheClient, logger)
	queryEmbedder := buildEmbedder(base, cfg, cfg.Embedding.QueryInstruction, cacheClient, logger)
	logger.Info("Embedders created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Repositories
	recipeRepo := reciperepo.New(store.Pool())
	searchRepo := searchrepo.New(store.Pool())

	// Use case services
	searchSvc := searchuc.NewService(searchRepo, recipeRepo, queryEmbedder, cfg.Search.SimilarityThreshold)
	recipeSvc := recipeuc.NewService(recipeRepo, docEmbedder)
	recommendSvc := recommenduc.NewService(recipeRepo)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(base))

	server := chiTransport.NewServer(searchSvc, recipeSvc, recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

// buildEmbedder assembles the decorator chain: OpenAI -> Retry -> Cached -> Instrumented -> Instruction
func buildEmbedder(
	base domain.Embedder,
	cfg config.Config,
	instruction string,
	cache rueidis.Client,
	logger *zap.Logger,
) domain.Embedder {
	embedder := domain.Embedder(embeddinguc.NewRetryEmbedder(base, logger))

	if cache != nil {
		embedder = embcache.New(embedder, cache, metrics.EmbeddingCacheTotal, logger)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Embedding.Model, logger)

	// Instruction prefix (outermost — cache key includes instruction)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
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
