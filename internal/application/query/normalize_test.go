package query_test

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquery "github.com/jhoicas/recetario-api/internal/application/query"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
)

const (
	idA = "3f2b8c1e-9d4a-4e6b-8f21-0c5d7a9e1b23"
	idB = "7a1c9e2d-4b3f-4c8a-9e6d-1f0b2a3c4d5e"
)

func mustParse(t *testing.T, q string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(q)
	require.NoError(t, err)
	return v
}

// ─── Recetas ────────────────────────────────────────────────────────────────

func TestNormalizeRecipeParams_SinParametros(t *testing.T) {
	f, s := appquery.NormalizeRecipeParams(url.Values{})
	assert.Equal(t, dq.RecipeFilter{Category: dq.CategoryMatch{Kind: dq.MatchAnyCategory}}, f)
	assert.Equal(t, dq.DefaultRecipeSort(), s)
}

func TestNormalizeRecipeParams_CategoriaNullEscalar(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId=null"))
	assert.Equal(t, dq.MatchUncategorized, f.Category.Kind)
}

func TestNormalizeRecipeParams_CategoriaEscalar(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId="+idA))
	assert.Equal(t, dq.MatchCategory, f.Category.Kind)
	assert.Equal(t, uuid.MustParse(idA), f.Category.ID)
}

func TestNormalizeRecipeParams_CategoriaMalFormadaSeIgnora(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId=xyz"))
	assert.Equal(t, dq.MatchAnyCategory, f.Category.Kind)
}

func TestNormalizeRecipeParams_ArregloConNull(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId="+idA+"&categoryId=null"))
	assert.Equal(t, dq.MatchCategorySet, f.Category.Kind)
	assert.Equal(t, []uuid.UUID{uuid.MustParse(idA)}, f.Category.IDs)
	assert.True(t, f.Category.IncludeNull)
}

func TestNormalizeRecipeParams_ArregloConCorchetes(t *testing.T) {
	q := "categoryId[]=" + idA + "&categoryId[]=" + idB + "&categoryId[]=" + idA + "&categoryId[]=basura"
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, q))
	assert.Equal(t, dq.MatchCategorySet, f.Category.Kind)
	assert.Equal(t, []uuid.UUID{uuid.MustParse(idA), uuid.MustParse(idB)}, f.Category.IDs, "duplicados y mal formados fuera")
	assert.False(t, f.Category.IncludeNull)
}

func TestNormalizeRecipeParams_CorcheteUnicoEsArreglo(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId[]=null"))
	assert.Equal(t, dq.MatchCategorySet, f.Category.Kind)
	assert.Empty(t, f.Category.IDs)
	assert.True(t, f.Category.IncludeNull)
}

func TestNormalizeRecipeParams_ArregloSinValidosEsSinFiltro(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "categoryId=a&categoryId=undefined&categoryId=b"))
	assert.Equal(t, dq.MatchAnyCategory, f.Category.Kind)
}

func TestNormalizeRecipeParams_Centinelas(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "name=undefined&notes=null&categoryId=undefined&rating=null"))
	assert.Empty(t, f.Name)
	assert.Empty(t, f.Notes)
	assert.Nil(t, f.Rating)
	assert.Equal(t, dq.MatchAnyCategory, f.Category.Kind)
}

func TestNormalizeRecipeParams_Rating(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "rating=4"))
	require.NotNil(t, f.Rating)
	assert.Equal(t, 4, *f.Rating)

	f, _ = appquery.NormalizeRecipeParams(mustParse(t, "rating=cuatro"))
	assert.Nil(t, f.Rating, "no numérico se ignora")

	f, _ = appquery.NormalizeRecipeParams(mustParse(t, "rating=9"))
	require.NotNil(t, f.Rating, "fuera de rango se conserva y simplemente no coincide")
	assert.Equal(t, 9, *f.Rating)
}

func TestNormalizeRecipeParams_OrdenIndependiente(t *testing.T) {
	_, s := appquery.NormalizeRecipeParams(mustParse(t, "sortDir=desc"))
	assert.Equal(t, dq.RecipeSort{Field: dq.RecipeSortName, Dir: dq.Desc}, s)

	_, s = appquery.NormalizeRecipeParams(mustParse(t, "sortField=rating"))
	assert.Equal(t, dq.RecipeSort{Field: dq.RecipeSortRating, Dir: dq.Asc}, s)

	_, s = appquery.NormalizeRecipeParams(mustParse(t, "sortField=createdAt&sortDir=sideways"))
	assert.Equal(t, dq.DefaultRecipeSort(), s)

	_, s = appquery.NormalizeRecipeParams(mustParse(t, "sortField=category&sortDir=desc"))
	assert.Equal(t, dq.RecipeSort{Field: dq.RecipeSortCategory, Dir: dq.Desc}, s)
}

func TestNormalizeRecipeParams_NombreYNotas(t *testing.T) {
	f, _ := appquery.NormalizeRecipeParams(mustParse(t, "name=%20pollo%20&notes=picante"))
	assert.Equal(t, "pollo", f.Name)
	assert.Equal(t, "picante", f.Notes)
}

// ─── Categorías ─────────────────────────────────────────────────────────────

func TestNormalizeCategoryParams(t *testing.T) {
	f, s := appquery.NormalizeCategoryParams(mustParse(t, "name=cen&sortField=recipes&sortDir=desc&extra=1"))
	assert.Equal(t, "cen", f.Name)
	assert.Equal(t, dq.CategorySort{Field: dq.CategorySortRecipes, Dir: dq.Desc}, s)

	f, s = appquery.NormalizeCategoryParams(mustParse(t, "name=undefined&sortField=rating"))
	assert.Empty(t, f.Name)
	assert.Equal(t, dq.DefaultCategorySort(), s)
}
