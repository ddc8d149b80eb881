package query

import (
	"github.com/google/uuid"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
)

// CompileCategories arma el plan de listado de categorías. El propietario siempre
// sale del token (ownerID), nunca de parámetros del cliente.
func CompileCategories(ownerID uuid.UUID, f dq.CategoryFilter, s dq.CategorySort) dq.Plan {
	plan := dq.Plan{
		Entity: dq.EntityCategory,
		Where:  []dq.Predicate{dq.Eq(dq.FieldOwner, ownerID)},
		Join:   dq.JoinCategoryRecipes,
		Sort:   dq.SortKey{Field: dq.FieldName, Desc: s.Dir == dq.Desc},
	}
	if f.Name != "" {
		plan.Where = append(plan.Where, dq.Contains(dq.FieldName, f.Name))
	}
	if s.Field == dq.CategorySortRecipes {
		plan.Sort.Field = dq.FieldRecipeCount
	}
	return plan
}

// CompileRecipes arma el plan de listado de recetas. Si llegan name y notes
// (caja de búsqueda única) se combinan con OR.
func CompileRecipes(ownerID uuid.UUID, f dq.RecipeFilter, s dq.RecipeSort) dq.Plan {
	plan := dq.Plan{
		Entity: dq.EntityRecipe,
		Where:  []dq.Predicate{dq.Eq(dq.FieldOwner, ownerID)},
		Join:   dq.JoinRecipeCategory,
		Sort:   dq.SortKey{Field: dq.FieldName, Desc: s.Dir == dq.Desc},
	}

	switch {
	case f.Name != "" && f.Notes != "":
		plan.Where = append(plan.Where, dq.Or(
			dq.Contains(dq.FieldName, f.Name),
			dq.Contains(dq.FieldNotes, f.Notes),
		))
	case f.Name != "":
		plan.Where = append(plan.Where, dq.Contains(dq.FieldName, f.Name))
	case f.Notes != "":
		plan.Where = append(plan.Where, dq.Contains(dq.FieldNotes, f.Notes))
	}

	if pred, ok := compileCategoryMatch(f.Category); ok {
		plan.Where = append(plan.Where, pred)
	}
	if f.Rating != nil {
		plan.Where = append(plan.Where, dq.Eq(dq.FieldRating, *f.Rating))
	}

	switch s.Field {
	case dq.RecipeSortCategory:
		plan.Sort.Field = dq.FieldCategoryName
	case dq.RecipeSortRating:
		plan.Sort.Field = dq.FieldRating
	}
	return plan
}

func compileCategoryMatch(m dq.CategoryMatch) (dq.Predicate, bool) {
	switch m.Kind {
	case dq.MatchUncategorized:
		return dq.IsNull(dq.FieldCategory), true
	case dq.MatchCategory:
		return dq.Eq(dq.FieldCategory, m.ID), true
	case dq.MatchCategorySet:
		switch {
		case len(m.IDs) == 0 && m.IncludeNull:
			return dq.IsNull(dq.FieldCategory), true
		case len(m.IDs) == 1 && !m.IncludeNull:
			return dq.Eq(dq.FieldCategory, m.IDs[0]), true
		case len(m.IDs) > 0:
			return dq.In(dq.FieldCategory, m.IDs, m.IncludeNull), true
		}
	}
	return dq.Predicate{}, false
}
