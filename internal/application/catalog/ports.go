package catalog

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error no queda visible ningún cambio parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		recipes repository.RecipeRepository,
	) error) error
}
