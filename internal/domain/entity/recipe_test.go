package entity_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
)

func validRecipe() entity.Recipe {
	return entity.Recipe{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Pollo al curry",
		Notes:  "picante",
		Rating: 4,
		URL:    "https://www.allrecipes.com/recipe/1",
	}
}

func TestRecipeValidate_Valida(t *testing.T) {
	r := validRecipe()
	assert.NoError(t, r.Validate())
}

func TestRecipeValidate_Restricciones(t *testing.T) {
	cases := map[string]func(r *entity.Recipe){
		"sin nombre":        func(r *entity.Recipe) { r.Name = "  " },
		"sin usuario":       func(r *entity.Recipe) { r.UserID = uuid.Nil },
		"notas muy largas":  func(r *entity.Recipe) { r.Notes = strings.Repeat("n", entity.NotesMaxLength+1) },
		"rating negativo":   func(r *entity.Recipe) { r.Rating = -1 },
		"rating mayor a 5":  func(r *entity.Recipe) { r.Rating = 6 },
		"url relativa":      func(r *entity.Recipe) { r.URL = "/recetas/1" },
		"url sin esquema":   func(r *entity.Recipe) { r.URL = "allrecipes.com/recipe/1" },
		"url vacía":         func(r *entity.Recipe) { r.URL = "" },
		"url solo esquema":  func(r *entity.Recipe) { r.URL = "https://" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validRecipe()
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), domain.ErrValidation)
		})
	}
}

func TestRecipeValidate_LimitesIncluidos(t *testing.T) {
	r := validRecipe()
	r.Notes = strings.Repeat("ñ", entity.NotesMaxLength) // cuenta caracteres, no bytes
	r.Rating = 0
	assert.NoError(t, r.Validate())

	r.Rating = entity.MaxRating
	assert.NoError(t, r.Validate())
}

func TestCategoryValidate(t *testing.T) {
	c := entity.Category{ID: uuid.New(), UserID: uuid.New(), Name: "Cenas"}
	assert.NoError(t, c.Validate())

	c.Name = ""
	assert.ErrorIs(t, c.Validate(), domain.ErrValidation)

	c.Name = "Cenas"
	c.UserID = uuid.Nil
	assert.ErrorIs(t, c.Validate(), domain.ErrValidation)
}

func TestCategoryWithRecipes_RecipeCount(t *testing.T) {
	c := entity.CategoryWithRecipes{Recipes: []entity.Recipe{validRecipe(), validRecipe()}}
	assert.Equal(t, 2, c.RecipeCount())
	assert.Equal(t, 0, entity.CategoryWithRecipes{}.RecipeCount())
}
