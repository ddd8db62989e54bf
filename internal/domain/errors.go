package domain

import "errors"

var (
	// ErrRecipeNotFound signals a missing recipe within the caller's scope.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRequest signals a request that failed boundary validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrStorageUnavailable signals that the recipe store could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
