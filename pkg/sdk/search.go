package mealdex

import (
	"context"
	"fmt"
	"time"

	"github.com/mealdex/mealdex/internal/domain/search/mode"
	"github.com/mealdex/mealdex/internal/domain/search/request"
	searchuc "github.com/mealdex/mealdex/internal/usecase/search"
)

// Search runs a recipe search. Hybrid mode (the default) fuses semantic and
// full-text signals; the response reports the mode that actually produced the
// results.
func (c *Client) Search(ctx context.Context, req SearchRequest) (_ SearchResponse, err error) {
	defer func(start time.Time) { c.obs.observe("search", start, err) }(time.Now())

	domReq, err := request.New(req.Query, req.UserID, mode.Mode(req.Mode), req.Limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	resp, err := c.searchSvc.Search(ctx, domReq)
	if err != nil {
		return SearchResponse{}, err
	}
	return responseFromDomain(resp), nil
}

// SearchByIngredients finds recipes containing any of the given ingredient
// names, using full-text matching.
func (c *Client) SearchByIngredients(
	ctx context.Context, userID string, ingredients []string, limit int,
) (_ SearchResponse, err error) {
	defer func(start time.Time) { c.obs.observe("search_by_ingredients", start, err) }(time.Now())

	resp, err := c.searchSvc.SearchByIngredients(ctx, userID, ingredients, limit)
	if err != nil {
		return SearchResponse{}, err
	}
	return responseFromDomain(resp), nil
}

func responseFromDomain(resp searchuc.Response) SearchResponse {
	results := make([]SearchResult, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultFromDomain(&resp.Results[i])
	}
	return SearchResponse{
		Results:    results,
		SearchType: SearchMode(resp.SearchType),
	}
}
