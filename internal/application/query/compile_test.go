package query_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquery "github.com/jhoicas/recetario-api/internal/application/query"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
)

func TestCompileRecipes_PropietarioSiemprePrimero(t *testing.T) {
	owner := uuid.New()
	plan := appquery.CompileRecipes(owner, dq.RecipeFilter{Name: "a"}, dq.DefaultRecipeSort())

	require.NotEmpty(t, plan.Where)
	assert.Equal(t, dq.Eq(dq.FieldOwner, owner), plan.Where[0])
	got, err := plan.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
	assert.Equal(t, dq.EntityRecipe, plan.Entity)
	assert.Equal(t, dq.JoinRecipeCategory, plan.Join)
}

func TestCompileRecipes_NombreYNotasEnOR(t *testing.T) {
	plan := appquery.CompileRecipes(uuid.New(), dq.RecipeFilter{Name: "pollo", Notes: "picante"}, dq.DefaultRecipeSort())

	require.Len(t, plan.Where, 2)
	assert.Equal(t, dq.Or(
		dq.Contains(dq.FieldName, "pollo"),
		dq.Contains(dq.FieldNotes, "picante"),
	), plan.Where[1])
}

func TestCompileRecipes_SoloNotas(t *testing.T) {
	plan := appquery.CompileRecipes(uuid.New(), dq.RecipeFilter{Notes: "picante"}, dq.DefaultRecipeSort())
	require.Len(t, plan.Where, 2)
	assert.Equal(t, dq.Contains(dq.FieldNotes, "picante"), plan.Where[1])
}

func TestCompileRecipes_FiltroDeCategoria(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cases := []struct {
		name  string
		match dq.CategoryMatch
		want  *dq.Predicate
	}{
		{"sin filtro", dq.CategoryMatch{Kind: dq.MatchAnyCategory}, nil},
		{"sin categoría", dq.CategoryMatch{Kind: dq.MatchUncategorized}, ptr(dq.IsNull(dq.FieldCategory))},
		{"un id", dq.CategoryMatch{Kind: dq.MatchCategory, ID: a}, ptr(dq.Eq(dq.FieldCategory, a))},
		{"conjunto de uno", dq.CategoryMatch{Kind: dq.MatchCategorySet, IDs: []uuid.UUID{a}}, ptr(dq.Eq(dq.FieldCategory, a))},
		{"solo null", dq.CategoryMatch{Kind: dq.MatchCategorySet, IncludeNull: true}, ptr(dq.IsNull(dq.FieldCategory))},
		{"conjunto con null", dq.CategoryMatch{Kind: dq.MatchCategorySet, IDs: []uuid.UUID{a}, IncludeNull: true},
			ptr(dq.In(dq.FieldCategory, []uuid.UUID{a}, true))},
		{"conjunto", dq.CategoryMatch{Kind: dq.MatchCategorySet, IDs: []uuid.UUID{a, b}},
			ptr(dq.In(dq.FieldCategory, []uuid.UUID{a, b}, false))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := appquery.CompileRecipes(uuid.New(), dq.RecipeFilter{Category: tc.match}, dq.DefaultRecipeSort())
			if tc.want == nil {
				assert.Len(t, plan.Where, 1)
				return
			}
			require.Len(t, plan.Where, 2)
			assert.Equal(t, *tc.want, plan.Where[1])
		})
	}
}

func TestCompileRecipes_RatingYOrden(t *testing.T) {
	four := 4
	plan := appquery.CompileRecipes(uuid.New(), dq.RecipeFilter{Rating: &four},
		dq.RecipeSort{Field: dq.RecipeSortCategory, Dir: dq.Desc})

	assert.Contains(t, plan.Where, dq.Eq(dq.FieldRating, 4))
	assert.Equal(t, dq.SortKey{Field: dq.FieldCategoryName, Desc: true}, plan.Sort)

	plan = appquery.CompileRecipes(uuid.New(), dq.RecipeFilter{}, dq.RecipeSort{Field: dq.RecipeSortRating, Dir: dq.Asc})
	assert.Equal(t, dq.SortKey{Field: dq.FieldRating}, plan.Sort)
}

func TestCompileCategories(t *testing.T) {
	owner := uuid.New()
	plan := appquery.CompileCategories(owner, dq.CategoryFilter{Name: "cen"},
		dq.CategorySort{Field: dq.CategorySortRecipes, Dir: dq.Desc})

	assert.Equal(t, dq.EntityCategory, plan.Entity)
	assert.Equal(t, dq.JoinCategoryRecipes, plan.Join)
	assert.Equal(t, []dq.Predicate{
		dq.Eq(dq.FieldOwner, owner),
		dq.Contains(dq.FieldName, "cen"),
	}, plan.Where)
	assert.Equal(t, dq.SortKey{Field: dq.FieldRecipeCount, Desc: true}, plan.Sort)

	plan = appquery.CompileCategories(owner, dq.CategoryFilter{}, dq.DefaultCategorySort())
	assert.Len(t, plan.Where, 1)
	assert.Equal(t, dq.SortKey{Field: dq.FieldName}, plan.Sort)
}

func TestPlanOwner_SinPropietario(t *testing.T) {
	_, err := dq.Plan{Entity: dq.EntityRecipe}.Owner()
	assert.ErrorIs(t, err, dq.ErrMissingOwner)

	_, err = dq.Plan{Where: []dq.Predicate{dq.Eq(dq.FieldOwner, uuid.Nil)}}.Owner()
	assert.ErrorIs(t, err, dq.ErrMissingOwner)
}

func ptr(p dq.Predicate) *dq.Predicate { return &p }
