package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
)

// Los IDs se guardan como texto UUID canónico en _id, userId y categoryId.

// CategoryDocument documento de la colección categories.
type CategoryDocument struct {
	ID     string `bson:"_id"`
	UserID string `bson:"userId"`
	Name   string `bson:"name"`
}

// RecipeDocument documento de la colección recipes. CategoryID nil se guarda como null.
type RecipeDocument struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"userId"`
	CategoryID *string   `bson:"categoryId"`
	Name       string    `bson:"name"`
	Notes      string    `bson:"notes"`
	Rating     int       `bson:"rating"`
	URL        string    `bson:"url"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// UserDocument documento de la colección credentialUsers.
type UserDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type categoryWithRecipesDocument struct {
	CategoryDocument `bson:",inline"`
	Recipes          []RecipeDocument `bson:"recipes"`
	RecipeCount      int              `bson:"recipeCount"`
}

type recipeWithCategoryDocument struct {
	RecipeDocument `bson:",inline"`
	Category       *CategoryDocument `bson:"category,omitempty"`
}

func toCategoryDocument(c *entity.Category) CategoryDocument {
	return CategoryDocument{ID: c.ID.String(), UserID: c.UserID.String(), Name: c.Name}
}

func (d CategoryDocument) toEntity() (entity.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return entity.Category{}, fmt.Errorf("category _id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.UserID)
	if err != nil {
		return entity.Category{}, fmt.Errorf("category userId %q: %w", d.UserID, err)
	}
	return entity.Category{ID: id, UserID: owner, Name: d.Name}, nil
}

func toRecipeDocument(r *entity.Recipe) RecipeDocument {
	doc := RecipeDocument{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Name:      r.Name,
		Notes:     r.Notes,
		Rating:    r.Rating,
		URL:       r.URL,
		CreatedAt: r.CreatedAt,
	}
	if r.CategoryID != nil {
		s := r.CategoryID.String()
		doc.CategoryID = &s
	}
	return doc
}

func (d RecipeDocument) toEntity() (entity.Recipe, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return entity.Recipe{}, fmt.Errorf("recipe _id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.UserID)
	if err != nil {
		return entity.Recipe{}, fmt.Errorf("recipe userId %q: %w", d.UserID, err)
	}
	r := entity.Recipe{
		ID:        id,
		UserID:    owner,
		Name:      d.Name,
		Notes:     d.Notes,
		Rating:    d.Rating,
		URL:       d.URL,
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.CategoryID != nil {
		cid, err := uuid.Parse(*d.CategoryID)
		if err != nil {
			return entity.Recipe{}, fmt.Errorf("recipe categoryId %q: %w", *d.CategoryID, err)
		}
		r.CategoryID = &cid
	}
	return r, nil
}
