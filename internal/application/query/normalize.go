// Package query normaliza los parámetros de listado (texto de la URL) a filtros tipados
// y los compila a un plan neutral al motor de almacenamiento.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
)

// Centinelas que deja la serialización del cliente; nunca se tratan como datos.
const (
	sentinelNull      = "null"
	sentinelUndefined = "undefined"
)

// Claves reconocidas. Cualquier otra se ignora.
const (
	keyName       = "name"
	keyNotes      = "notes"
	keyRating     = "rating"
	keyCategoryID = "categoryId"
	keySortField  = "sortField"
	keySortDir    = "sortDir"
)

// rawParam valor crudo de una clave: ausente, escalar o arreglo.
type rawParam struct {
	values  []string
	isArray bool
}

func (p rawParam) absent() bool { return len(p.values) == 0 }

// first devuelve el primer valor que no sea centinela.
func (p rawParam) first() (string, bool) {
	for _, v := range p.values {
		if v == sentinelNull || v == sentinelUndefined || v == "" {
			continue
		}
		return v, true
	}
	return "", false
}

// lookup une "key" y "key[]" (serialización con corchetes); quita los "undefined".
func lookup(values url.Values, key string) rawParam {
	var p rawParam
	if vs, ok := values[key+"[]"]; ok {
		p.values = append(p.values, vs...)
		p.isArray = true
	}
	if vs, ok := values[key]; ok {
		p.values = append(p.values, vs...)
	}
	if len(p.values) > 1 {
		p.isArray = true
	}
	kept := p.values[:0]
	for _, v := range p.values {
		v = strings.TrimSpace(v)
		if v == sentinelUndefined {
			continue
		}
		kept = append(kept, v)
	}
	p.values = kept
	return p
}

// NormalizeCategoryParams produce el filtro y el orden de categorías.
func NormalizeCategoryParams(values url.Values) (dq.CategoryFilter, dq.CategorySort) {
	var f dq.CategoryFilter
	if name, ok := lookup(values, keyName).first(); ok {
		f.Name = name
	}

	s := dq.DefaultCategorySort()
	if field, ok := lookup(values, keySortField).first(); ok {
		switch dq.CategorySortField(field) {
		case dq.CategorySortName, dq.CategorySortRecipes:
			s.Field = dq.CategorySortField(field)
		}
	}
	s.Dir = normalizeDir(values)
	return f, s
}

// NormalizeRecipeParams produce el filtro y el orden de recetas.
func NormalizeRecipeParams(values url.Values) (dq.RecipeFilter, dq.RecipeSort) {
	var f dq.RecipeFilter
	if name, ok := lookup(values, keyName).first(); ok {
		f.Name = name
	}
	if notes, ok := lookup(values, keyNotes).first(); ok {
		f.Notes = notes
	}
	if raw, ok := lookup(values, keyRating).first(); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			f.Rating = &n
		}
	}
	f.Category = normalizeCategoryMatch(lookup(values, keyCategoryID))

	s := dq.DefaultRecipeSort()
	if field, ok := lookup(values, keySortField).first(); ok {
		switch dq.RecipeSortField(field) {
		case dq.RecipeSortName, dq.RecipeSortCategory, dq.RecipeSortRating:
			s.Field = dq.RecipeSortField(field)
		}
	}
	s.Dir = normalizeDir(values)
	return f, s
}

func normalizeDir(values url.Values) dq.SortDir {
	if dir, ok := lookup(values, keySortDir).first(); ok && dq.SortDir(dir) == dq.Desc {
		return dq.Desc
	}
	return dq.Asc
}

// normalizeCategoryMatch: escalar "null" → sin categoría; escalar id → ese id;
// arreglo → conjunto donde "null" añade "sin categoría". Los IDs mal formados se descartan.
func normalizeCategoryMatch(p rawParam) dq.CategoryMatch {
	if p.absent() {
		return dq.CategoryMatch{Kind: dq.MatchAnyCategory}
	}
	if !p.isArray {
		v := p.values[0]
		if v == sentinelNull {
			return dq.CategoryMatch{Kind: dq.MatchUncategorized}
		}
		id, err := ident.Encode(v)
		if err != nil {
			return dq.CategoryMatch{Kind: dq.MatchAnyCategory}
		}
		return dq.CategoryMatch{Kind: dq.MatchCategory, ID: id}
	}

	m := dq.CategoryMatch{Kind: dq.MatchCategorySet}
	seen := make(map[uuid.UUID]bool, len(p.values))
	for _, v := range p.values {
		if v == sentinelNull {
			m.IncludeNull = true
			continue
		}
		id, err := ident.Encode(v)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		m.IDs = append(m.IDs, id)
	}
	if len(m.IDs) == 0 && !m.IncludeNull {
		return dq.CategoryMatch{Kind: dq.MatchAnyCategory}
	}
	return m
}
