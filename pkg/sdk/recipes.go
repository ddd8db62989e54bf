package mealdex

import (
	"context"
	"time"
)

// CreateRecipe stores a new recipe and derives its search artifacts. The
// returned recipe carries the generated ID and timestamps.
func (c *Client) CreateRecipe(ctx context.Context, rec Recipe) (_ Recipe, err error) {
	defer func(start time.Time) { c.obs.observe("create_recipe", start, err) }(time.Now())

	created, err := c.recipeSvc.Create(ctx, recipeToDomain(&rec))
	if err != nil {
		return Recipe{}, err
	}
	return recipeFromDomain(&created), nil
}

// GetRecipe fetches one recipe scoped to its owner.
func (c *Client) GetRecipe(ctx context.Context, userID, id string) (_ Recipe, err error) {
	defer func(start time.Time) { c.obs.observe("get_recipe", start, err) }(time.Now())

	rec, err := c.recipeSvc.Get(ctx, userID, id)
	if err != nil {
		return Recipe{}, err
	}
	return recipeFromDomain(&rec), nil
}

// ListRecipes returns a page of the user's recipes. Pass the returned cursor
// to fetch the next page; an empty cursor means the end.
func (c *Client) ListRecipes(ctx context.Context, userID, cursor string, limit int) (_ RecipePage, err error) {
	defer func(start time.Time) { c.obs.observe("list_recipes", start, err) }(time.Now())

	recipes, next, err := c.recipeSvc.List(ctx, userID, cursor, limit)
	if err != nil {
		return RecipePage{}, err
	}

	page := RecipePage{
		Recipes:    make([]Recipe, len(recipes)),
		NextCursor: next,
	}
	for i := range recipes {
		page.Recipes[i] = recipeFromDomain(&recipes[i])
	}
	return page, nil
}

// UpdateRecipe replaces a recipe's fields. The embedding is regenerated only
// when content fields changed.
func (c *Client) UpdateRecipe(ctx context.Context, rec Recipe) (_ Recipe, err error) {
	defer func(start time.Time) { c.obs.observe("update_recipe", start, err) }(time.Now())

	updated, err := c.recipeSvc.Update(ctx, recipeToDomain(&rec))
	if err != nil {
		return Recipe{}, err
	}
	return recipeFromDomain(&updated), nil
}

// DeleteRecipe removes a recipe and its embeddings.
func (c *Client) DeleteRecipe(ctx context.Context, userID, id string) (err error) {
	defer func(start time.Time) { c.obs.observe("delete_recipe", start, err) }(time.Now())

	return c.recipeSvc.Delete(ctx, userID, id)
}
