package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. UserID debe coincidir con el token.
type CreateCategoryRequest struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// UpdateCategoryRequest actualización parcial; _id y userId no se modifican.
type UpdateCategoryRequest struct {
	Name   *string `json:"name"`
	UserID string  `json:"userId"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID     string `json:"_id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// CategoryWithRecipesResponse categoría con las recetas que la referencian.
type CategoryWithRecipesResponse struct {
	CategoryResponse
	Recipes     []RecipeResponse `json:"recipes"`
	RecipeCount int              `json:"recipeCount"`
}

// CreateRecipeRequest entrada para crear una receta. createdAt lo asigna el servidor.
type CreateRecipeRequest struct {
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	Notes      string  `json:"notes"`
	Rating     int     `json:"rating"`
	CategoryID *string `json:"categoryId"`
	UserID     string  `json:"userId"`
}

// UpdateRecipeRequest actualización parcial; categoryId admite null para quitar la categoría.
type UpdateRecipeRequest struct {
	Name       *string        `json:"name"`
	URL        *string        `json:"url"`
	Notes      *string        `json:"notes"`
	Rating     *int           `json:"rating"`
	CategoryID OptionalString `json:"categoryId"`
	UserID     string         `json:"userId"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	CategoryID *string   `json:"categoryId"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes"`
	Rating     int       `json:"rating"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RecipeWithCategoryResponse receta con su categoría (null si no tiene).
type RecipeWithCategoryResponse struct {
	RecipeResponse
	Category *CategoryResponse `json:"category"`
}

// HomepageResponse resumen del inicio.
type HomepageResponse struct {
	RecentlyAdded       []string                  `json:"recentlyAdded"`
	HighestRated        []string                  `json:"highestRated"`
	RecommendedWebsites []string                  `json:"recommendedWebsites"`
	Lookup              map[string]RecipeResponse `json:"lookup"`
}
