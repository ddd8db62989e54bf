package mealdex

import (
	"context"
	"fmt"
	"time"

	domrecommend "github.com/mealdex/mealdex/internal/domain/recommend"
)

// Recommend returns the user's recipes matching all given preferences,
// ordered by rating with newest first as the tiebreak.
func (c *Client) Recommend(
	ctx context.Context, userID string, prefs Preferences, limit int,
) (_ []Recipe, err error) {
	defer func(start time.Time) { c.obs.observe("recommend", start, err) }(time.Now())

	domPrefs, err := domrecommend.New(userID, prefs.Cuisine, prefs.Difficulty, prefs.DietaryTags, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	recipes, err := c.recommendSvc.Recommend(ctx, domPrefs)
	if err != nil {
		return nil, err
	}

	out := make([]Recipe, len(recipes))
	for i := range recipes {
		out[i] = recipeFromDomain(&recipes[i])
	}
	return out, nil
}
