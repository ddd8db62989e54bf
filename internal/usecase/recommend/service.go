// Package recommend implements preference-based recipe recommendations:
// a conjunctive filter over the user's own recipes, ordered by rating.
package recommend

import (
	"context"
	"fmt"

	"github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/recommend"
)

// Lister is the storage surface for preference filtering (ISP).
type Lister interface {
	ListByPreferences(ctx context.Context, prefs *recommend.Prefs) ([]recipe.Recipe, error)
}

// Service resolves recommendation requests against storage. There is no
// relevance scoring on this path; ordering is rating DESC with newest first
// as the tiebreak, applied by the query.
type Service struct {
	store Lister
}

// NewService creates the recommendation service.
func NewService(store Lister) *Service {
	return &Service{store: store}
}

// Recommend returns the user's recipes matching all given preferences.
func (s *Service) Recommend(ctx context.Context, prefs recommend.Prefs) ([]recipe.Recipe, error) {
	recipes, err := s.store.ListByPreferences(ctx, &prefs)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return recipes, nil
}
