// Package memory adaptador de almacenamiento en proceso. Evalúa el plan de consulta en Go
// y ofrece transacciones copy-on-write. Se usa con DB_DRIVER=memory y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/application/catalog"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)

// dataset colecciones en orden de inserción.
type dataset struct {
	categories []entity.Category
	recipes    []entity.Recipe
	users      []entity.User
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		categories: append([]entity.Category(nil), d.categories...),
		recipes:    make([]entity.Recipe, len(d.recipes)),
		users:      append([]entity.User(nil), d.users...),
	}
	for i, r := range d.recipes {
		r.CategoryID = copyID(r.CategoryID)
		out.recipes[i] = r
	}
	return out
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

// accessor da acceso de lectura/escritura al dataset vigente.
type accessor interface {
	read(fn func(d *dataset) error) error
	write(fn func(d *dataset) error) error
}

// Store almacén compartido protegido por un RWMutex.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &dataset{}}
}

func (s *Store) read(fn func(d *dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(d *dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Categories repositorio de categorías sobre el almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{acc: s} }

// Recipes repositorio de recetas sobre el almacén.
func (s *Store) Recipes() *RecipeRepo { return &RecipeRepo{acc: s} }

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{acc: s} }

// Run ejecuta fn sobre una copia del dataset y la publica solo si fn termina sin error.
// Mantiene el lock de escritura durante toda la transacción.
func (s *Store) Run(_ context.Context, fn func(
	categories repository.CategoryRepository,
	recipes repository.RecipeRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txAccess{data: s.data.clone()}
	if err := fn(&CategoryRepo{acc: tx}, &RecipeRepo{acc: tx}); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

// txAccess acceso directo a la copia de una transacción; el lock lo sostiene Run.
type txAccess struct {
	data *dataset
}

func (t *txAccess) read(fn func(d *dataset) error) error  { return fn(t.data) }
func (t *txAccess) write(fn func(d *dataset) error) error { return fn(t.data) }
