package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const lockCategoryForReferenceSQL = `SELECT 1 FROM categories WHERE id = $1 AND user_id = $2 FOR SHARE`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *CategoryRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	var owner uuid.UUID
	err := r.q.QueryRow(ctx, `SELECT user_id FROM categories WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("category owner: %w", err)
	}
	return owner, true, nil
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, user_id, name) VALUES ($1, $2, $3)`,
		c.ID, c.UserID, c.Name,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría del propietario.
func (r *CategoryRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, name FROM categories WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// LockForReference toma FOR SHARE sobre la fila; un DELETE concurrente espera al commit.
func (r *CategoryRepo) LockForReference(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, lockCategoryForReferenceSQL, id, ownerID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock category: %w", err)
	}
	return true, nil
}

// Update cambia el nombre.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $3 WHERE id = $1 AND user_id = $2`,
		c.ID, c.UserID, c.Name,
	)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina la categoría del propietario.
func (r *CategoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List ejecuta el plan y adjunta a cada categoría las recetas del mismo usuario que la referencian.
func (r *CategoryRepo) List(ctx context.Context, plan dq.Plan) ([]entity.CategoryWithRecipes, error) {
	owner, err := plan.Owner()
	if err != nil {
		return nil, err
	}
	sql, args, err := buildCategoryQuery(plan)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list := make([]entity.CategoryWithRecipes, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var c entity.CategoryWithRecipes
		var total int64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &total); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Recipes = make([]entity.Recipe, 0, total)
		index[c.ID] = len(list)
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	recipes, err := r.q.Query(ctx, `
		SELECT id, user_id, category_id, name, notes, rating, url, created_at
		FROM recipes
		WHERE user_id = $1 AND category_id = ANY($2::uuid[])
		ORDER BY created_at ASC, id ASC`,
		owner, idStrings(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("list category recipes: %w", err)
	}
	defer recipes.Close()
	for recipes.Next() {
		rec, err := scanRecipe(recipes)
		if err != nil {
			return nil, err
		}
		if rec.CategoryID == nil {
			continue
		}
		if i, ok := index[*rec.CategoryID]; ok {
			list[i].Recipes = append(list[i].Recipes, *rec)
		}
	}
	if err := recipes.Err(); err != nil {
		return nil, fmt.Errorf("list category recipes: %w", err)
	}
	return list, nil
}
