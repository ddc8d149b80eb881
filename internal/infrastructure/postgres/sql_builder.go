package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
)

// Columnas por campo lógico. c = categories, r = recipes, rc = conteo agregado por categoría.
var (
	categoryColumns = map[dq.Field]string{
		dq.FieldOwner:       "c.user_id",
		dq.FieldName:        "c.name",
		dq.FieldRecipeCount: "COALESCE(rc.total, 0)",
	}
	recipeColumns = map[dq.Field]string{
		dq.FieldOwner:        "r.user_id",
		dq.FieldName:         "r.name",
		dq.FieldNotes:        "r.notes",
		dq.FieldRating:       "r.rating",
		dq.FieldCategory:     "r.category_id",
		dq.FieldCategoryName: "c.name",
	}
)

const (
	categorySelect = `
		SELECT c.id, c.user_id, c.name, COALESCE(rc.total, 0) AS recipe_count
		FROM categories c
		LEFT JOIN (
			SELECT category_id, user_id, COUNT(*) AS total
			FROM recipes
			WHERE category_id IS NOT NULL
			GROUP BY category_id, user_id
		) rc ON rc.category_id = c.id AND rc.user_id = c.user_id`

	recipeSelect = `
		SELECT r.id, r.user_id, r.category_id, r.name, r.notes, r.rating, r.url, r.created_at,
		       c.id, c.user_id, c.name
		FROM recipes r
		LEFT JOIN categories c ON c.id = r.category_id AND c.user_id = r.user_id`
)

// sqlBuilder traduce predicados del plan a SQL parametrizado ($1, $2, ...).
type sqlBuilder struct {
	columns map[dq.Field]string
	args    []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) column(f dq.Field) (string, error) {
	col, ok := b.columns[f]
	if !ok {
		return "", fmt.Errorf("postgres: campo no soportado %q", f)
	}
	return col, nil
}

func (b *sqlBuilder) where(preds []dq.Predicate) (string, error) {
	if len(preds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		s, err := b.predicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (b *sqlBuilder) predicate(p dq.Predicate) (string, error) {
	if p.Op == dq.OpOr {
		if len(p.Any) == 0 {
			return "FALSE", nil
		}
		parts := make([]string, 0, len(p.Any))
		for _, sub := range p.Any {
			s, err := b.predicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}

	col, err := b.column(p.Field)
	if err != nil {
		return "", err
	}
	switch p.Op {
	case dq.OpEq:
		if id, ok := p.Value.(uuid.UUID); ok {
			return col + " = " + b.arg(id.String()) + "::uuid", nil
		}
		return col + " = " + b.arg(p.Value), nil
	case dq.OpIsNull:
		return col + " IS NULL", nil
	case dq.OpContains:
		text, _ := p.Value.(string)
		return "strpos(lower(" + col + "), lower(" + b.arg(text) + ")) > 0", nil
	case dq.OpIn:
		in := col + " = ANY(" + b.arg(idStrings(p.IDs)) + "::uuid[])"
		if p.IncludeNull {
			return "(" + in + " OR " + col + " IS NULL)", nil
		}
		return in, nil
	}
	return "", fmt.Errorf("postgres: operador no soportado %d", p.Op)
}

// orderBy ordena por la clave del plan y desempata por id para que la paginación sea estable.
// Los textos se comparan en minúsculas; NULL va primero en asc y último en desc.
func (b *sqlBuilder) orderBy(key dq.SortKey, idColumn string) (string, error) {
	col, err := b.column(key.Field)
	if err != nil {
		return "", err
	}
	switch key.Field {
	case dq.FieldName, dq.FieldNotes, dq.FieldCategoryName:
		col = "lower(" + col + ")"
	}
	dir := "ASC NULLS FIRST"
	if key.Desc {
		dir = "DESC NULLS LAST"
	}
	return " ORDER BY " + col + " " + dir + ", " + idColumn + " ASC", nil
}

// buildCategoryQuery SQL del listado de categorías con conteo de recetas.
func buildCategoryQuery(plan dq.Plan) (string, []any, error) {
	if plan.Entity != dq.EntityCategory {
		return "", nil, fmt.Errorf("postgres: plan de %q en repositorio de categorías", plan.Entity)
	}
	b := &sqlBuilder{columns: categoryColumns}
	return b.build(categorySelect, plan, "c.id")
}

// buildRecipeQuery SQL del listado de recetas con su categoría.
func buildRecipeQuery(plan dq.Plan) (string, []any, error) {
	if plan.Entity != dq.EntityRecipe {
		return "", nil, fmt.Errorf("postgres: plan de %q en repositorio de recetas", plan.Entity)
	}
	b := &sqlBuilder{columns: recipeColumns}
	return b.build(recipeSelect, plan, "r.id")
}

func (b *sqlBuilder) build(base string, plan dq.Plan, idColumn string) (string, []any, error) {
	if _, err := plan.Owner(); err != nil {
		return "", nil, err
	}
	where, err := b.where(plan.Where)
	if err != nil {
		return "", nil, err
	}
	order, err := b.orderBy(plan.Sort, idColumn)
	if err != nil {
		return "", nil, err
	}
	return base + where + order, b.args, nil
}
