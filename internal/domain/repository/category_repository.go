package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/query"
)

// OwnerLookup resuelve el propietario guardado de un documento sin acotar por usuario.
// Solo lo usa la puerta de autorización para distinguir "ajeno" de "inexistente".
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id uuid.UUID) (owner uuid.UUID, found bool, err error)
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las lecturas y escrituras por ID se acotan por propietario.
type CategoryRepository interface {
	OwnerLookup
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve (nil, nil) si no existe o no pertenece a ownerID.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Category, error)
	// LockForReference bloquea la categoría del propietario hasta el fin de la transacción en curso,
	// para que no pueda borrarse mientras una receta pasa a referenciarla. Devuelve false si no existe.
	LockForReference(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	// Update modifica solo Name; devuelve false si no hubo documento coincidente.
	Update(ctx context.Context, category *entity.Category) (bool, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	// List ejecuta un plan de EntityCategory con JoinCategoryRecipes.
	List(ctx context.Context, plan query.Plan) ([]entity.CategoryWithRecipes, error)
}
