package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/rs/zerolog"
)

// AuthHandler maneja registro de credenciales y login.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieName   string
	secureCookie bool
	log          zerolog.Logger
}

// NewAuthHandler construye el handler de auth. secureCookie marca la cookie como Secure (producción).
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, secureCookie: secureCookie, log: log}
}

// Register godoc
// @Summary      Registrar credenciales
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/credentials [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if h.cookieName != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    out.Token,
			Path:     "/",
			Expires:  time.Now().Add(h.uc.TokenTTL()),
			HTTPOnly: true,
			Secure:   h.secureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(out)
}

// Logout borra la cookie de sesión.
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if h.cookieName != "" {
		c.ClearCookie(h.cookieName)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
