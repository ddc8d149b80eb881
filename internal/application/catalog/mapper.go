package catalog

import (
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	"github.com/jhoicas/recetario-api/internal/domain/summary"
)

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:     ident.Decode(c.ID),
		UserID: ident.Decode(c.UserID),
		Name:   c.Name,
	}
}

func toCategoryWithRecipesResponse(c entity.CategoryWithRecipes) dto.CategoryWithRecipesResponse {
	recipes := make([]dto.RecipeResponse, 0, len(c.Recipes))
	for i := range c.Recipes {
		recipes = append(recipes, *toRecipeResponse(&c.Recipes[i]))
	}
	return dto.CategoryWithRecipesResponse{
		CategoryResponse: *toCategoryResponse(&c.Category),
		Recipes:          recipes,
		RecipeCount:      c.RecipeCount(),
	}
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	if r == nil {
		return nil
	}
	return &dto.RecipeResponse{
		ID:         ident.Decode(r.ID),
		UserID:     ident.Decode(r.UserID),
		CategoryID: ident.DecodeOptional(r.CategoryID),
		Name:       r.Name,
		Notes:      r.Notes,
		Rating:     r.Rating,
		URL:        r.URL,
		CreatedAt:  r.CreatedAt,
	}
}

func toRecipeWithCategoryResponse(r entity.RecipeWithCategory) dto.RecipeWithCategoryResponse {
	return dto.RecipeWithCategoryResponse{
		RecipeResponse: *toRecipeResponse(&r.Recipe),
		Category:       toCategoryResponse(r.Category),
	}
}

func toHomepageResponse(h summary.Homepage) *dto.HomepageResponse {
	out := &dto.HomepageResponse{
		RecentlyAdded:       make([]string, 0, len(h.RecentlyAdded)),
		HighestRated:        make([]string, 0, len(h.HighestRated)),
		RecommendedWebsites: h.RecommendedWebsites,
		Lookup:              make(map[string]dto.RecipeResponse, len(h.Lookup)),
	}
	for _, id := range h.RecentlyAdded {
		out.RecentlyAdded = append(out.RecentlyAdded, ident.Decode(id))
	}
	for _, id := range h.HighestRated {
		out.HighestRated = append(out.HighestRated, ident.Decode(id))
	}
	for id, r := range h.Lookup {
		out.Lookup[ident.Decode(id)] = *toRecipeResponse(&r)
	}
	return out
}
