package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	"github.com/jhoicas/recetario-api/internal/application/catalog"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Categories     *catalog.CategoryService
	Recipes        *catalog.RecipeService
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	SessionCookie  string
	SecureCookie   bool
	RateLimitRPS   float64
	RateLimitBurst int
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	limit := RateLimit(deps.RateLimitRPS, deps.RateLimitBurst)

	// Auth y registro de credenciales (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionCookie, deps.SecureCookie, deps.Log)
	api.Post("/auth/login", limit, authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Post("/users/credentials", limit, authHandler.Register)

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.SessionCookie))

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.Recipes, deps.Log)
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/homepage", recipeHandler.Homepage)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
}
