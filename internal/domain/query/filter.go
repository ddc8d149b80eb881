package query

import "github.com/google/uuid"

// SortDir dirección de ordenamiento.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// CategorySortField campos por los que se pueden ordenar categorías.
type CategorySortField string

const (
	CategorySortName    CategorySortField = "name"
	CategorySortRecipes CategorySortField = "recipes" // cardinalidad del join, no un campo guardado
)

// RecipeSortField campos por los que se pueden ordenar recetas.
type RecipeSortField string

const (
	RecipeSortName     RecipeSortField = "name"
	RecipeSortCategory RecipeSortField = "category" // nombre de la categoría unida
	RecipeSortRating   RecipeSortField = "rating"
)

// CategorySort orden normalizado de categorías.
type CategorySort struct {
	Field CategorySortField
	Dir   SortDir
}

// RecipeSort orden normalizado de recetas.
type RecipeSort struct {
	Field RecipeSortField
	Dir   SortDir
}

// DefaultCategorySort (name, asc).
func DefaultCategorySort() CategorySort {
	return CategorySort{Field: CategorySortName, Dir: Asc}
}

// DefaultRecipeSort (name, asc).
func DefaultRecipeSort() RecipeSort {
	return RecipeSort{Field: RecipeSortName, Dir: Asc}
}

// CategoryFilter filtro normalizado de categorías. Name vacío = sin filtro.
type CategoryFilter struct {
	Name string
}

// CategoryMatchKind variante del filtro por categoría de una receta.
type CategoryMatchKind int

const (
	MatchAnyCategory   CategoryMatchKind = iota // sin filtro
	MatchUncategorized                          // categoryId = null
	MatchCategory                               // categoryId = ID
	MatchCategorySet                            // categoryId IN IDs (∪ null si IncludeNull)
)

// CategoryMatch unión etiquetada del filtro categoryId; nunca contiene los centinelas "null"/"undefined".
type CategoryMatch struct {
	Kind        CategoryMatchKind
	ID          uuid.UUID
	IDs         []uuid.UUID
	IncludeNull bool
}

// RecipeFilter filtro normalizado de recetas. Cadenas vacías y Rating nil = sin filtro.
type RecipeFilter struct {
	Category CategoryMatch
	Name     string
	Notes    string
	Rating   *int
}
