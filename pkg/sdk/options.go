package mealdex

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mealdex/mealdex/internal/domain"
)

// Embedder turns text into a vector. Implement it to plug in a custom
// embedding provider instead of the built-in OpenAI-compatible one.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dsn      string
	maxConns int

	openaiKey     string
	openaiBaseURL string
	model         string
	dimensions    int
	embedder      Embedder

	cacheAddr     string
	cachePassword string

	similarityThreshold float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres configures the Postgres connection string.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithMaxConns bounds the connection pool size.
func WithMaxConns(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConns = n
	})
}

// WithOpenAIEmbedder configures the built-in OpenAI-compatible embedding
// provider.
func WithOpenAIEmbedder(apiKey, model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiKey = apiKey
		c.model = model
		c.dimensions = dimensions
	})
}

// WithEmbeddingBaseURL overrides the embedding provider endpoint, for
// OpenAI-compatible servers.
func WithEmbeddingBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiBaseURL = baseURL
	})
}

// WithEmbedder plugs in a custom embedding provider. Dimensions must match
// the stored schema.
func WithEmbedder(e Embedder, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
		c.dimensions = dimensions
	})
}

// WithRedisCache enables the Redis embedding cache.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddr = addr
		c.cachePassword = password
	})
}

// WithSimilarityThreshold sets the minimum cosine similarity for semantic
// candidates (default 0.5).
func WithSimilarityThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.similarityThreshold = t
	})
}

// WithLogger enables SDK operation logging.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = logger
	})
}

// WithMetrics registers SDK operation metrics on the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// embedderAdapter bridges the public Embedder to the internal interface.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}
