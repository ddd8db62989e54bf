// Package embedding holds the embedder decorator chain above the transport:
// retry and instrumentation. The cache decorator lives in repository/embcache
// because it owns storage.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/domain"
)

const retryBackoff = 200 * time.Millisecond

// RetryEmbedder retries a failed provider call once. The embedding provider
// is the only remote network dependency on the search path, so one bounded
// retry absorbs transient failures without hiding a real outage.
type RetryEmbedder struct {
	inner  domain.Embedder
	logger *zap.Logger
}

// NewRetryEmbedder wraps an embedder with a single-retry policy.
func NewRetryEmbedder(inner domain.Embedder, logger *zap.Logger) *RetryEmbedder {
	return &RetryEmbedder{inner: inner, logger: logger}
}

// Embed delegates to the inner embedder, retrying once on failure unless the
// context is already done.
func (r *RetryEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	result, err := r.inner.Embed(ctx, text)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	r.logger.Warn("Embedding request failed, retrying once", zap.Error(err))

	select {
	case <-ctx.Done():
		return domain.EmbeddingResult{}, fmt.Errorf("embed retry cancelled: %w", ctx.Err())
	case <-time.After(retryBackoff):
	}

	result, err = r.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed after retry: %w", err)
	}
	return result, nil
}
