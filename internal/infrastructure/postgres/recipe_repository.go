package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *RecipeRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	var owner uuid.UUID
	err := r.q.QueryRow(ctx, `SELECT user_id FROM recipes WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("recipe owner: %w", err)
	}
	return owner, true, nil
}

// Create persiste una nueva receta.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipes (id, user_id, category_id, name, notes, rating, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.UserID, nullableID(rec.CategoryID), rec.Name, rec.Notes, rec.Rating, rec.URL, rec.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoryId no corresponde a una categoría existente", domain.ErrValidation)
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta del propietario.
func (r *RecipeRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Recipe, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, user_id, category_id, name, notes, rating, url, created_at
		FROM recipes WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Update reemplaza los campos mutables.
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE recipes
		SET category_id = $3, name = $4, notes = $5, rating = $6, url = $7
		WHERE id = $1 AND user_id = $2`,
		rec.ID, rec.UserID, nullableID(rec.CategoryID), rec.Name, rec.Notes, rec.Rating, rec.URL,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: categoryId no corresponde a una categoría existente", domain.ErrValidation)
		}
		return false, fmt.Errorf("update recipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina la receta del propietario.
func (r *RecipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClearCategory desasigna la categoría en las recetas del propietario.
func (r *RecipeRepo) ClearCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE recipes SET category_id = NULL WHERE user_id = $1 AND category_id = $2`,
		ownerID, categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear recipe category: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List ejecuta el plan con LEFT JOIN a la categoría del mismo usuario.
func (r *RecipeRepo) List(ctx context.Context, plan dq.Plan) ([]entity.RecipeWithCategory, error) {
	sql, args, err := buildRecipeQuery(plan)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	list := make([]entity.RecipeWithCategory, 0)
	for rows.Next() {
		var (
			rec                  entity.RecipeWithCategory
			categoryID           pgtype.UUID
			joinedID, joinedUser pgtype.UUID
			joinedName           pgtype.Text
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &categoryID, &rec.Name, &rec.Notes, &rec.Rating, &rec.URL, &rec.CreatedAt,
			&joinedID, &joinedUser, &joinedName,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		rec.CategoryID = fromNullableID(categoryID)
		if joinedID.Valid {
			rec.Category = &entity.Category{
				ID:     uuid.UUID(joinedID.Bytes),
				UserID: uuid.UUID(joinedUser.Bytes),
				Name:   joinedName.String,
			}
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return list, nil
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var (
		rec        entity.Recipe
		categoryID pgtype.UUID
	)
	if err := row.Scan(
		&rec.ID, &rec.UserID, &categoryID, &rec.Name, &rec.Notes, &rec.Rating, &rec.URL, &rec.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	rec.CategoryID = fromNullableID(categoryID)
	return &rec, nil
}
