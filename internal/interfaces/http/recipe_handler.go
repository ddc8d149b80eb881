package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/catalog"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	appquery "github.com/jhoicas/recetario-api/internal/application/query"
	"github.com/rs/zerolog"
)

// RecipeHandler maneja las peticiones HTTP para Recipe (protegido).
type RecipeHandler struct {
	svc *catalog.RecipeService
	log zerolog.Logger
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(svc *catalog.RecipeService, log zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: log}
}

// List godoc
// @Summary      Listar recetas con su categoría
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        categoryId  query  string  false  "ID, lista de IDs (categoryId[]) o null"
// @Param        rating      query  int     false  "valoración exacta 0-5"
// @Param        name        query  string  false  "subcadena del nombre"
// @Param        notes       query  string  false  "subcadena de las notas"
// @Param        sortField   query  string  false  "name | category | rating"
// @Param        sortDir     query  string  false  "asc | desc"
// @Success      200  {array}   dto.RecipeWithCategoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	filter, sort := appquery.NormalizeRecipeParams(queryValues(c))
	out, err := h.svc.List(c.UserContext(), GetAuth(c), filter, sort)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Homepage godoc
// @Summary      Resumen de inicio: recientes, mejor valoradas y sitios recomendados
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HomepageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/recipes/homepage [get]
func (h *RecipeHandler) Homepage(c *fiber.Ctx) error {
	out, err := h.svc.Homepage(c.UserContext(), GetAuth(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), GetAuth(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "name, url, notes, rating, categoryId, userId"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetAuth(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "campos a modificar; categoryId null quita la categoría"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.Update(c.UserContext(), GetAuth(c), c.Params("id"), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         recipes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la receta"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetAuth(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
