package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/recetario-api/internal/application/access"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	appquery "github.com/jhoicas/recetario-api/internal/application/query"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	"github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// CategoryService casos de uso de categorías: listado con join a recetas, CRUD y
// borrado en cascada atómico.
type CategoryService struct {
	repo repository.CategoryRepository
	tx   TxRunner
	gate *access.Gate
}

// NewCategoryService construye el servicio.
func NewCategoryService(repo repository.CategoryRepository, tx TxRunner, gate *access.Gate) *CategoryService {
	return &CategoryService{repo: repo, tx: tx, gate: gate}
}

// List devuelve las categorías del usuario con sus recetas. Sin coincidencias → lista vacía.
func (s *CategoryService) List(ctx context.Context, auth access.AuthContext, f query.CategoryFilter, sort query.CategorySort) ([]dto.CategoryWithRecipesResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{Action: access.ActionRead, Resource: access.ResourceCategory}); err != nil {
		return nil, err
	}
	plan := appquery.CompileCategories(auth.UserID, f, sort)
	list, err := s.repo.List(ctx, plan)
	if err != nil {
		return nil, domain.Internal(err)
	}
	out := make([]dto.CategoryWithRecipesResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryWithRecipesResponse(c))
	}
	return out, nil
}

// GetByID obtiene una categoría propia; ajena o inexistente → ErrNotFound.
func (s *CategoryService) GetByID(ctx context.Context, auth access.AuthContext, rawID string) (*dto.CategoryResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{Action: access.ActionRead, Resource: access.ResourceCategory}); err != nil {
		return nil, err
	}
	id, err := ident.Encode(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, auth.UserID, id)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Create crea una categoría. userId es obligatorio y debe ser el del token.
func (s *CategoryService) Create(ctx context.Context, auth access.AuthContext, in dto.CreateCategoryRequest) (*dto.CreatedResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:        access.ActionCreate,
		Resource:      access.ResourceCategory,
		DeclaredOwner: in.UserID,
	}); err != nil {
		return nil, err
	}
	category := &entity.Category{
		ID:     ident.New(),
		UserID: auth.UserID,
		Name:   strings.TrimSpace(in.Name),
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, domain.Internal(err)
	}
	return &dto.CreatedResponse{ID: ident.Decode(category.ID)}, nil
}

// Update cambia el nombre. _id y userId del cuerpo se ignoran (userId solo se contrasta con el token).
func (s *CategoryService) Update(ctx context.Context, auth access.AuthContext, rawID string, in dto.UpdateCategoryRequest) error {
	id, err := ident.Encode(rawID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:        access.ActionUpdate,
		Resource:      access.ResourceCategory,
		ID:            id,
		DeclaredOwner: in.UserID,
	}); err != nil {
		return err
	}
	category, err := s.repo.GetByID(ctx, auth.UserID, id)
	if err != nil {
		return domain.Internal(err)
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if err := category.Validate(); err != nil {
		return err
	}
	ok, err := s.repo.Update(ctx, category)
	if err != nil {
		return domain.Internal(err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la categoría y deja en null el categoryId de las recetas del usuario que la
// referencian, ambos pasos en una única transacción. La categoría se borra primero: así espera
// a cualquier transacción que la tenga bloqueada por referencia y el desasignado posterior ve sus recetas.
func (s *CategoryService) Delete(ctx context.Context, auth access.AuthContext, rawID string) error {
	id, err := ident.Encode(rawID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:   access.ActionDelete,
		Resource: access.ResourceCategory,
		ID:       id,
	}); err != nil {
		return err
	}
	err = s.tx.Run(ctx, func(categories repository.CategoryRepository, recipes repository.RecipeRepository) error {
		deleted, err := categories.Delete(ctx, auth.UserID, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if !deleted {
			return domain.ErrNotFound
		}
		if _, err := recipes.ClearCategory(ctx, auth.UserID, id); err != nil {
			return fmt.Errorf("clear recipes category: %w", err)
		}
		return nil
	})
	return passDomain(err)
}
