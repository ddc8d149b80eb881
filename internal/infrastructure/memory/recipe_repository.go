package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository en memoria.
type RecipeRepo struct {
	acc accessor
}

type recipeRow struct {
	entity.RecipeWithCategory
}

func (r recipeRow) field(f dq.Field) (any, error) {
	switch f {
	case dq.FieldOwner:
		return r.UserID, nil
	case dq.FieldName:
		return r.Name, nil
	case dq.FieldNotes:
		return r.Notes, nil
	case dq.FieldRating:
		return r.Rating, nil
	case dq.FieldCategory:
		if r.CategoryID == nil {
			return nil, nil
		}
		return *r.CategoryID, nil
	case dq.FieldCategoryName:
		if r.Category == nil {
			return nil, nil
		}
		return r.Category.Name, nil
	}
	return nil, fmt.Errorf("memory: campo de receta no soportado %q", f)
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *RecipeRepo) OwnerOf(_ context.Context, id uuid.UUID) (owner uuid.UUID, found bool, err error) {
	err = r.acc.read(func(d *dataset) error {
		for _, rec := range d.recipes {
			if rec.ID == id {
				owner, found = rec.UserID, true
				return nil
			}
		}
		return nil
	})
	return owner, found, err
}

// Create persiste una nueva receta.
func (r *RecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	return r.acc.write(func(d *dataset) error {
		for _, existing := range d.recipes {
			if existing.ID == rec.ID {
				return fmt.Errorf("insert recipe: id duplicado %s", rec.ID)
			}
		}
		stored := *rec
		stored.CategoryID = copyID(rec.CategoryID)
		d.recipes = append(d.recipes, stored)
		return nil
	})
}

// GetByID obtiene una receta del propietario.
func (r *RecipeRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*entity.Recipe, error) {
	var out *entity.Recipe
	err := r.acc.read(func(d *dataset) error {
		for _, rec := range d.recipes {
			if rec.ID == id && rec.UserID == ownerID {
				found := rec
				found.CategoryID = copyID(rec.CategoryID)
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza los campos mutables.
func (r *RecipeRepo) Update(_ context.Context, rec *entity.Recipe) (ok bool, err error) {
	err = r.acc.write(func(d *dataset) error {
		for i := range d.recipes {
			cur := &d.recipes[i]
			if cur.ID != rec.ID || cur.UserID != rec.UserID {
				continue
			}
			cur.CategoryID = copyID(rec.CategoryID)
			cur.Name = rec.Name
			cur.Notes = rec.Notes
			cur.Rating = rec.Rating
			cur.URL = rec.URL
			ok = true
			return nil
		}
		return nil
	})
	return ok, err
}

// Delete elimina la receta del propietario.
func (r *RecipeRepo) Delete(_ context.Context, ownerID, id uuid.UUID) (ok bool, err error) {
	err = r.acc.write(func(d *dataset) error {
		for i, rec := range d.recipes {
			if rec.ID == id && rec.UserID == ownerID {
				d.recipes = append(d.recipes[:i:i], d.recipes[i+1:]...)
				ok = true
				return nil
			}
		}
		return nil
	})
	return ok, err
}

// ClearCategory desasigna la categoría en las recetas del propietario.
func (r *RecipeRepo) ClearCategory(_ context.Context, ownerID, categoryID uuid.UUID) (n int64, err error) {
	err = r.acc.write(func(d *dataset) error {
		for i := range d.recipes {
			rec := &d.recipes[i]
			if rec.UserID == ownerID && rec.CategoryID != nil && *rec.CategoryID == categoryID {
				rec.CategoryID = nil
				n++
			}
		}
		return nil
	})
	return n, err
}

// List evalúa el plan: join con la categoría del mismo usuario, filtro y orden estable.
func (r *RecipeRepo) List(_ context.Context, plan dq.Plan) ([]entity.RecipeWithCategory, error) {
	if plan.Entity != dq.EntityRecipe {
		return nil, fmt.Errorf("memory: plan de %q en repositorio de recetas", plan.Entity)
	}
	if _, err := plan.Owner(); err != nil {
		return nil, err
	}
	var rows []recipeRow
	err := r.acc.read(func(d *dataset) error {
		for _, rec := range d.recipes {
			rec.CategoryID = copyID(rec.CategoryID)
			item := recipeRow{entity.RecipeWithCategory{Recipe: rec}}
			if rec.CategoryID != nil {
				for _, c := range d.categories {
					if c.ID == *rec.CategoryID && c.UserID == rec.UserID {
						joined := c
						item.Category = &joined
						break
					}
				}
			}
			ok, err := matchAll(item, plan.Where)
			if err != nil {
				return err
			}
			if ok {
				rows = append(rows, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := sortRows(rows, plan.Sort); err != nil {
		return nil, err
	}
	out := make([]entity.RecipeWithCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.RecipeWithCategory)
	}
	return out, nil
}
