package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository en memoria.
type CategoryRepo struct {
	acc accessor
}

type categoryRow struct {
	entity.CategoryWithRecipes
}

func (r categoryRow) field(f dq.Field) (any, error) {
	switch f {
	case dq.FieldOwner:
		return r.UserID, nil
	case dq.FieldName:
		return r.Name, nil
	case dq.FieldRecipeCount:
		return r.RecipeCount(), nil
	}
	return nil, fmt.Errorf("memory: campo de categoría no soportado %q", f)
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *CategoryRepo) OwnerOf(_ context.Context, id uuid.UUID) (owner uuid.UUID, found bool, err error) {
	err = r.acc.read(func(d *dataset) error {
		for _, c := range d.categories {
			if c.ID == id {
				owner, found = c.UserID, true
				return nil
			}
		}
		return nil
	})
	return owner, found, err
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.acc.write(func(d *dataset) error {
		for _, existing := range d.categories {
			if existing.ID == c.ID {
				return fmt.Errorf("insert category: id duplicado %s", c.ID)
			}
		}
		d.categories = append(d.categories, *c)
		return nil
	})
}

// GetByID obtiene una categoría del propietario.
func (r *CategoryRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*entity.Category, error) {
	var out *entity.Category
	err := r.acc.read(func(d *dataset) error {
		for _, c := range d.categories {
			if c.ID == id && c.UserID == ownerID {
				found := c
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

// LockForReference solo comprueba existencia: dentro de Run el lock de escritura ya excluye al resto.
func (r *CategoryRepo) LockForReference(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	c, err := r.GetByID(ctx, ownerID, id)
	return c != nil, err
}

// Update cambia el nombre.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) (ok bool, err error) {
	err = r.acc.write(func(d *dataset) error {
		for i := range d.categories {
			if d.categories[i].ID == c.ID && d.categories[i].UserID == c.UserID {
				d.categories[i].Name = c.Name
				ok = true
				return nil
			}
		}
		return nil
	})
	return ok, err
}

// Delete elimina la categoría del propietario.
func (r *CategoryRepo) Delete(_ context.Context, ownerID, id uuid.UUID) (ok bool, err error) {
	err = r.acc.write(func(d *dataset) error {
		for i, c := range d.categories {
			if c.ID == id && c.UserID == ownerID {
				d.categories = append(d.categories[:i:i], d.categories[i+1:]...)
				ok = true
				return nil
			}
		}
		return nil
	})
	return ok, err
}

// List evalúa el plan: join con las recetas del mismo usuario, filtro y orden estable.
func (r *CategoryRepo) List(_ context.Context, plan dq.Plan) ([]entity.CategoryWithRecipes, error) {
	if plan.Entity != dq.EntityCategory {
		return nil, fmt.Errorf("memory: plan de %q en repositorio de categorías", plan.Entity)
	}
	if _, err := plan.Owner(); err != nil {
		return nil, err
	}
	var rows []categoryRow
	err := r.acc.read(func(d *dataset) error {
		for _, c := range d.categories {
			item := categoryRow{entity.CategoryWithRecipes{Category: c, Recipes: []entity.Recipe{}}}
			for _, rec := range d.recipes {
				if rec.UserID == c.UserID && rec.CategoryID != nil && *rec.CategoryID == c.ID {
					rec.CategoryID = copyID(rec.CategoryID)
					item.Recipes = append(item.Recipes, rec)
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
	out := make([]entity.CategoryWithRecipes, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.CategoryWithRecipes)
	}
	return out, nil
}
