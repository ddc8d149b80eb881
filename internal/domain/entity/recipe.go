package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain"
)

const (
	// NotesMaxLength longitud máxima de las notas (en caracteres).
	NotesMaxLength = 450
	// MaxRating valoración máxima; 0 significa "sin valorar".
	MaxRating = 5
)

// Recipe receta de un usuario. CategoryID nil significa "sin categoría".
// CreatedAt lo asigna el servidor al insertar y no cambia.
type Recipe struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	Notes      string
	Rating     int
	URL        string
	CreatedAt  time.Time
}

// Validate verifica las restricciones de campo: name requerido, notas ≤ 450,
// rating 0–5 y url absoluta con esquema.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrValidation)
	}
	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: userId es requerido", domain.ErrValidation)
	}
	if utf8.RuneCountInString(r.Notes) > NotesMaxLength {
		return fmt.Errorf("%w: notes debe tener como máximo %d caracteres", domain.ErrValidation, NotesMaxLength)
	}
	if r.Rating < 0 || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating debe estar entre 0 y %d", domain.ErrValidation, MaxRating)
	}
	if !IsAbsoluteURL(r.URL) {
		return fmt.Errorf("%w: url debe ser una URL absoluta", domain.ErrValidation)
	}
	return nil
}

// IsAbsoluteURL indica si s parsea como URL absoluta con esquema y host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// RecipeWithCategory vista derivada: la receta con su categoría resuelta (nil si no tiene).
type RecipeWithCategory struct {
	Recipe
	Category *Category
}
