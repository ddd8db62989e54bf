package mealdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/domain"
	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	domrecommend "github.com/mealdex/mealdex/internal/domain/recommend"
	"github.com/mealdex/mealdex/internal/domain/search/request"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/repository/embcache"
	"github.com/mealdex/mealdex/internal/repository/pg"
	reciperepo "github.com/mealdex/mealdex/internal/repository/recipe"
	searchrepo "github.com/mealdex/mealdex/internal/repository/search"
	openaiEmb "github.com/mealdex/mealdex/internal/transport/openai"
	embeddinguc "github.com/mealdex/mealdex/internal/usecase/embedding"
	healthuc "github.com/mealdex/mealdex/internal/usecase/health"
	recipeuc "github.com/mealdex/mealdex/internal/usecase/recipe"
	recommenduc "github.com/mealdex/mealdex/internal/usecase/recommend"
	searchuc "github.com/mealdex/mealdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultSimilarityThresh = 0.5
	defaultVectorDimensions = 1536
)

// Internal interfaces for test substitution.
type searchUseCase interface {
	Search(ctx context.Context, req request.Request) (searchuc.Response, error)
	SearchByIngredients(ctx context.Context, userID string, names []string, limit int) (searchuc.Response, error)
}

type recipeUseCase interface {
	Create(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error)
	Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error)
	List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error)
	Update(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
}

type recommendUseCase interface {
	Recommend(ctx context.Context, prefs domrecommend.Prefs) ([]domrecipe.Recipe, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the mealdex SDK entry point.
type Client struct {
	store        *pg.Store
	cache        rueidis.Client
	searchSvc    searchUseCase
	recipeSvc    recipeUseCase
	recommendSvc recommendUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a mealdex Client and connects to the database.
// The provided context is used for the initial readiness check and schema
// migration.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		similarityThreshold: defaultSimilarityThresh,
		dimensions:          defaultVectorDimensions,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("mealdex: Postgres DSN required (use WithPostgres)")
	}
	if cfg.embedder == nil && cfg.openaiKey == "" {
		return nil, errors.New("mealdex: embedding provider required (use WithOpenAIEmbedder or WithEmbedder)")
	}

	store, err := pg.NewStore(ctx, pg.Config{DSN: cfg.dsn, MaxConns: cfg.maxConns})
	if err != nil {
		return nil, fmt.Errorf("mealdex: create store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mealdex: database not ready: %w", err)
	}
	if err := store.EnsureSchema(ctx, cfg.dimensions); err != nil {
		store.Close()
		return nil, fmt.Errorf("mealdex: ensure schema: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c := &Client{store: store, obs: obs}
	if err := c.wire(cfg); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) wire(cfg *clientConfig) error {
	var base domain.Embedder
	var healthChecker healthuc.EmbeddingChecker

	if cfg.embedder != nil {
		base = &embedderAdapter{inner: cfg.embedder}
	} else {
		e := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openaiKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
			Logger:     zap.NewNop(),
		})
		base = e
		healthChecker = e
	}

	embedder := domain.Embedder(embeddinguc.NewRetryEmbedder(base, zap.NewNop()))

	if cfg.cacheAddr != "" {
		cacheClient, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: []string{cfg.cacheAddr},
			Password:    cfg.cachePassword,
		})
		if err != nil {
			return fmt.Errorf("mealdex: connect embedding cache: %w", err)
		}
		c.cache = cacheClient
		embedder = embcache.New(embedder, cacheClient, metrics.EmbeddingCacheTotal, zap.NewNop())
	}

	recipeRepo := reciperepo.New(c.store.Pool())
	searchRepo := searchrepo.New(c.store.Pool())

	c.searchSvc = searchuc.NewService(searchRepo, recipeRepo, embedder, cfg.similarityThreshold)
	c.recipeSvc = recipeuc.NewService(recipeRepo, embedder)
	c.recommendSvc = recommenduc.NewService(recipeRepo)
	c.healthSvc = healthuc.New(c.store, healthChecker)
	return nil
}

// Close releases the database and cache connections.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { c.obs.observe("ping", start, err) }(time.Now())
	return c.store.HealthCheck(ctx)
}
