package memory

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository en memoria.
type UserRepo struct {
	acc accessor
}

// Create persiste un nuevo usuario; username es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.acc.write(func(d *dataset) error {
		for _, u := range d.users {
			if u.Username == user.Username {
				return domain.ErrUsernameTaken
			}
		}
		d.users = append(d.users, *user)
		return nil
	})
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.acc.read(func(d *dataset) error {
		for _, u := range d.users {
			if u.Username == username {
				found := u
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}
