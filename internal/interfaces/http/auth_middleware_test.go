package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/recetario-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/recetario-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-4000-8000-000000000001"
	testIssuer     = "recetario-test"
	testCookieName = "session_token"
	testExpMin     = 60
)

// buildTestApp aplicación mínima: AuthMiddleware + handler que devuelve el AuthContext.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName),
		func(c *fiber.Ctx) error {
			auth := apphttp.GetAuth(c)
			return c.JSON(fiber.Map{
				"user_id":  auth.UserID.String(),
				"username": auth.Username,
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, secret, userID string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, userID, "ana", testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, mutate func(r *http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerValido(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, testJWTSecret, testUserID, testExpMin)

	resp := doRequest(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "ana", body["username"])
}

func TestAuthMiddleware_CookieDeSesion(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, testJWTSecret, testUserID, testExpMin)

	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookieName, Value: tok})
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	resp := doRequest(t, buildTestApp(), nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeMap(t, resp)["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok := tokenFor(t, "otro-secreto", testUserID, testExpMin)
	resp := doRequest(t, buildTestApp(), func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok := tokenFor(t, testJWTSecret, testUserID, -5)
	resp := doRequest(t, buildTestApp(), func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UserIDMalFormadoEnClaims(t *testing.T) {
	tok := tokenFor(t, testJWTSecret, "no-es-un-uuid", testExpMin)
	resp := doRequest(t, buildTestApp(), func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenBasura(t *testing.T) {
	resp := doRequest(t, buildTestApp(), func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc.def.ghi") })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
