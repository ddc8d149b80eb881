package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/application/access"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	appquery "github.com/jhoicas/recetario-api/internal/application/query"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	"github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
	"github.com/jhoicas/recetario-api/internal/domain/summary"
)

// RecipeService casos de uso de recetas y resumen de inicio.
type RecipeService struct {
	repo repository.RecipeRepository
	tx   TxRunner
	gate *access.Gate
	now  func() time.Time
}

// NewRecipeService construye el servicio.
func NewRecipeService(repo repository.RecipeRepository, tx TxRunner, gate *access.Gate) *RecipeService {
	return &RecipeService{
		repo: repo,
		tx:   tx,
		gate: gate,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve las recetas del usuario con su categoría resuelta.
func (s *RecipeService) List(ctx context.Context, auth access.AuthContext, f query.RecipeFilter, sort query.RecipeSort) ([]dto.RecipeWithCategoryResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{Action: access.ActionRead, Resource: access.ResourceRecipe}); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, appquery.CompileRecipes(auth.UserID, f, sort))
	if err != nil {
		return nil, domain.Internal(err)
	}
	out := make([]dto.RecipeWithCategoryResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRecipeWithCategoryResponse(r))
	}
	return out, nil
}

// GetByID obtiene una receta propia; ajena o inexistente → ErrNotFound.
func (s *RecipeService) GetByID(ctx context.Context, auth access.AuthContext, rawID string) (*dto.RecipeResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{Action: access.ActionRead, Resource: access.ResourceRecipe}); err != nil {
		return nil, err
	}
	id, err := ident.Encode(rawID)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.GetByID(ctx, auth.UserID, id)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRecipeResponse(r), nil
}

// Homepage calcula recentlyAdded, highestRated y recommendedWebsites sobre todas las recetas del usuario.
func (s *RecipeService) Homepage(ctx context.Context, auth access.AuthContext) (*dto.HomepageResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{Action: access.ActionRead, Resource: access.ResourceRecipe}); err != nil {
		return nil, err
	}
	plan := appquery.CompileRecipes(auth.UserID, query.RecipeFilter{}, query.DefaultRecipeSort())
	list, err := s.repo.List(ctx, plan)
	if err != nil {
		return nil, domain.Internal(err)
	}
	recipes := make([]entity.Recipe, 0, len(list))
	for _, r := range list {
		recipes = append(recipes, r.Recipe)
	}
	return toHomepageResponse(summary.BuildHomepage(recipes)), nil
}

// Create crea una receta. Si trae categoryId, la categoría debe existir y ser del usuario.
func (s *RecipeService) Create(ctx context.Context, auth access.AuthContext, in dto.CreateRecipeRequest) (*dto.CreatedResponse, error) {
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:        access.ActionCreate,
		Resource:      access.ResourceRecipe,
		DeclaredOwner: in.UserID,
	}); err != nil {
		return nil, err
	}
	categoryID, err := ident.EncodeOptional(in.CategoryID)
	if err != nil {
		return nil, err
	}
	recipe := &entity.Recipe{
		ID:         ident.New(),
		UserID:     auth.UserID,
		CategoryID: categoryID,
		Name:       strings.TrimSpace(in.Name),
		Notes:      in.Notes,
		Rating:     in.Rating,
		URL:        strings.TrimSpace(in.URL),
		CreatedAt:  s.now(),
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	err = s.tx.Run(ctx, func(categories repository.CategoryRepository, recipes repository.RecipeRepository) error {
		if err := ensureCategory(ctx, categories, auth.UserID, recipe.CategoryID); err != nil {
			return err
		}
		return recipes.Create(ctx, recipe)
	})
	if err != nil {
		return nil, passDomain(err)
	}
	return &dto.CreatedResponse{ID: ident.Decode(recipe.ID)}, nil
}

// Update aplica una actualización parcial. _id, userId y createdAt no cambian.
func (s *RecipeService) Update(ctx context.Context, auth access.AuthContext, rawID string, in dto.UpdateRecipeRequest) error {
	id, err := ident.Encode(rawID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:        access.ActionUpdate,
		Resource:      access.ResourceRecipe,
		ID:            id,
		DeclaredOwner: in.UserID,
	}); err != nil {
		return err
	}
	var categoryID *uuid.UUID
	if in.CategoryID.Set {
		if categoryID, err = ident.EncodeOptional(in.CategoryID.Value); err != nil {
			return err
		}
	}

	err = s.tx.Run(ctx, func(categories repository.CategoryRepository, recipes repository.RecipeRepository) error {
		recipe, err := recipes.GetByID(ctx, auth.UserID, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		applyRecipeUpdate(recipe, in, categoryID)
		if err := recipe.Validate(); err != nil {
			return err
		}
		if in.CategoryID.Set {
			if err := ensureCategory(ctx, categories, auth.UserID, recipe.CategoryID); err != nil {
				return err
			}
		}
		ok, err := recipes.Update(ctx, recipe)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	return passDomain(err)
}

// Delete borra una receta propia.
func (s *RecipeService) Delete(ctx context.Context, auth access.AuthContext, rawID string) error {
	id, err := ident.Encode(rawID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, auth, access.Request{
		Action:   access.ActionDelete,
		Resource: access.ResourceRecipe,
		ID:       id,
	}); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, auth.UserID, id)
	if err != nil {
		return domain.Internal(err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func applyRecipeUpdate(r *entity.Recipe, in dto.UpdateRecipeRequest, categoryID *uuid.UUID) {
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.URL != nil {
		r.URL = strings.TrimSpace(*in.URL)
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.CategoryID.Set {
		r.CategoryID = categoryID
	}
}

// ensureCategory exige que una categoría referenciada exista y pertenezca al usuario,
// y la bloquea hasta el commit para que un borrado concurrente no deje la referencia colgando.
func ensureCategory(ctx context.Context, categories repository.CategoryRepository, ownerID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	ok, err := categories.LockForReference(ctx, ownerID, *categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: categoryId no corresponde a una categoría del usuario", domain.ErrValidation)
	}
	return nil
}

// passDomain deja pasar los errores de dominio conocidos y marca el resto como internos.
func passDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrInvalidIdentifier,
		domain.ErrForbidden,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return domain.Internal(err)
}
