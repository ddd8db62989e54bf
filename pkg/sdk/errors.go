package mealdex

import "github.com/mealdex/mealdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRecipeNotFound         = domain.ErrRecipeNotFound
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrStorageUnavailable     = domain.ErrStorageUnavailable
)
