package repository

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios con credenciales.
type UserRepository interface {
	// Create devuelve domain.ErrUsernameTaken si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devuelve (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
