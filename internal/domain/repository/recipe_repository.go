package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/query"
)

// RecipeRepository define el puerto de persistencia para Recipe (DIP).
type RecipeRepository interface {
	OwnerLookup
	Create(ctx context.Context, recipe *entity.Recipe) error
	// GetByID devuelve (nil, nil) si no existe o no pertenece a ownerID.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Recipe, error)
	// Update reemplaza los campos mutables (todo salvo ID, UserID y CreatedAt).
	Update(ctx context.Context, recipe *entity.Recipe) (bool, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	// ClearCategory pone categoryId = null en las recetas de ownerID que referencian categoryID.
	ClearCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error)
	// List ejecuta un plan de EntityRecipe con JoinRecipeCategory.
	List(ctx context.Context, plan query.Plan) ([]entity.RecipeWithCategory, error)
}
