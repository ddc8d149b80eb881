package http

import (
	"fmt"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jhoicas/recetario-api/internal/application/access"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	pkgjwt "github.com/jhoicas/recetario-api/pkg/jwt"
)

// Locals keys.
const (
	localToken = "session_token"
	LocalAuth  = "auth"
)

// AuthMiddleware valida el JWT (Bearer o cookie de sesión) y deja un access.AuthContext en c.Locals.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	lookup := "header:" + fiber.HeaderAuthorization
	if cookieName != "" {
		lookup += ",cookie:" + cookieName
	}
	return jwtware.New(jwtware.Config{
		KeyFunc:     pkgjwt.KeyFunc(jwtSecret),
		Claims:      &pkgjwt.Claims{},
		TokenLookup: lookup,
		ContextKey:  localToken,
		SuccessHandler: func(c *fiber.Ctx) error {
			auth, err := authFromToken(c.Locals(localToken))
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(LocalAuth, auth)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return unauthorized(c)
		},
	})
}

func authFromToken(v interface{}) (access.AuthContext, error) {
	token, ok := v.(*jwt.Token)
	if !ok || token == nil {
		return access.AuthContext{}, fmt.Errorf("token ausente")
	}
	claims, ok := token.Claims.(*pkgjwt.Claims)
	if !ok {
		return access.AuthContext{}, fmt.Errorf("claims inválidos")
	}
	userID, err := ident.Encode(claims.UserID)
	if err != nil {
		return access.AuthContext{}, err
	}
	return access.AuthContext{UserID: userID, Username: claims.Username}, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida o expirada"})
}

// GetAuth devuelve el AuthContext del contexto (después del middleware de auth).
// Sin middleware devuelve un contexto no autenticado y la puerta responde 401.
func GetAuth(c *fiber.Ctx) access.AuthContext {
	auth, _ := c.Locals(LocalAuth).(access.AuthContext)
	return auth
}
