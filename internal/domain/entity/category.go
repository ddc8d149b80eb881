package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain"
)

// Category agrupa recetas de un único usuario. El nombre no es único (solo convención de UI).
// ID y UserID son inmutables tras la creación; solo Name se actualiza.
type Category struct {
	ID     uuid.UUID // uuid.Nil hasta persistir
	UserID uuid.UUID
	Name   string
}

// Validate verifica los campos obligatorios.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrValidation)
	}
	if c.UserID == uuid.Nil {
		return fmt.Errorf("%w: userId es requerido", domain.ErrValidation)
	}
	return nil
}

// CategoryWithRecipes vista derivada: la categoría con las recetas del mismo usuario que la referencian.
// No se persiste; se calcula en cada consulta.
type CategoryWithRecipes struct {
	Category
	Recipes []Recipe
}

// RecipeCount cardinalidad del join.
func (c CategoryWithRecipes) RecipeCount() int {
	return len(c.Recipes)
}
