package request

import (
	"fmt"

	"github.com/mealdex/mealdex/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 10
	MaxLimit       = 100
)

// Request is a validated search query. UserID is always required: there is no
// default scope, so a request can never silently read another tenant's data.
type Request struct {
	query      string
	userID     string
	searchMode mode.Mode
	limit      int
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, limit=10.
func New(query, userID string, m mode.Mode, limit int) (Request, error) {
	if userID == "" {
		return Request{}, fmt.Errorf("user ID is required")
	}
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:      query,
		userID:     userID,
		searchMode: m,
		limit:      limit,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// UserID returns the scope identifier.
func (r *Request) UserID() string { return r.userID }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
