package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/recetario-api/internal/application/access"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	"github.com/jhoicas/recetario-api/internal/application/catalog"
	apphttp "github.com/jhoicas/recetario-api/internal/interfaces/http"
	"github.com/jhoicas/recetario-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

type session struct {
	userID string
	token  string
}

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	gate := access.NewGate(store.Categories(), store.Recipes(), zerolog.Nop())
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		Categories: catalog.NewCategoryService(store.Categories(), store, gate),
		Recipes:    catalog.NewRecipeService(store.Recipes(), store, gate),
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, bcrypt.MinCost),
		JWTSecret:      testJWTSecret,
		SessionCookie:  testCookieName,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		Log:            zerolog.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signUp(t *testing.T, app *fiber.App, username string) session {
	t.Helper()
	creds := map[string]string{"username": username, "password": "clave-segura"}
	resp := call(t, app, http.MethodPost, "/api/users/credentials", "", creds)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	user := decodeMap(t, resp)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	login := decodeMap(t, resp)
	return session{userID: user["_id"].(string), token: login["token"].(string)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroDuplicadoYLoginFallido(t *testing.T) {
	app := buildAPI(t)
	signUp(t, app, "ana")

	resp := call(t, app, http.MethodPost, "/api/users/credentials", "", map[string]string{"username": "ana", "password": "x"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ana", "password": "mala"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginEmiteCookieYLogoutLaBorra(t *testing.T) {
	app := buildAPI(t)
	signUp(t, app, "ana")

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ana", "password": "clave-segura"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	resp = call(t, app, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAPI_CuerpoInvalido(t *testing.T) {
	app := buildAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeMap(t, resp)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y recetas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutasProtegidasSinSesion(t *testing.T) {
	app := buildAPI(t)
	for _, path := range []string{"/api/categories", "/api/recipes", "/api/recipes/homepage"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestAPI_FlujoCompleto(t *testing.T) {
	app := buildAPI(t)
	ana := signUp(t, app, "ana")

	resp := call(t, app, http.MethodPost, "/api/categories", ana.token, map[string]any{"name": "Cenas", "userId": ana.userID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	catID := decodeMap(t, resp)["_id"].(string)

	resp = call(t, app, http.MethodPost, "/api/recipes", ana.token, map[string]any{
		"name": "Sopa", "url": "https://www.bbc.co.uk/food/sopa", "rating": 4, "categoryId": catID, "userId": ana.userID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	soupID := decodeMap(t, resp)["_id"].(string)

	resp = call(t, app, http.MethodPost, "/api/recipes", ana.token, map[string]any{
		"name": "Pan", "url": "https://example.com/pan", "categoryId": nil, "userId": ana.userID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// filtro por categoría null
	resp = call(t, app, http.MethodGet, "/api/recipes?categoryId=null", ana.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Pan", list[0]["name"])
	assert.Nil(t, list[0]["category"])

	// orden por categoría desc: null al final
	resp = call(t, app, http.MethodGet, "/api/recipes?sortField=category&sortDir=desc", ana.token, nil)
	list = decodeList(t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Sopa", list[0]["name"])

	resp = call(t, app, http.MethodGet, "/api/categories?sortField=recipes&sortDir=desc", ana.token, nil)
	cats := decodeList(t, resp)
	require.Len(t, cats, 1)
	assert.EqualValues(t, 1, cats[0]["recipeCount"])

	resp = call(t, app, http.MethodGet, "/api/recipes/homepage", ana.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	home := decodeMap(t, resp)
	assert.Len(t, home["recentlyAdded"], 2)
	assert.Contains(t, home["recommendedWebsites"], "www.bbc.co.uk")

	resp = call(t, app, http.MethodPut, "/api/recipes/"+soupID, ana.token, map[string]any{"rating": 5})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/categories/"+catID, ana.token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/recipes/"+soupID, ana.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	soup := decodeMap(t, resp)
	assert.Nil(t, soup["categoryId"])
	assert.EqualValues(t, 5, soup["rating"])
}

func TestAPI_CodigosDeError(t *testing.T) {
	app := buildAPI(t)
	ana := signUp(t, app, "ana")
	beto := signUp(t, app, "beto")

	resp := call(t, app, http.MethodPost, "/api/categories", ana.token, map[string]any{"name": "Cenas", "userId": ana.userID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	catID := decodeMap(t, resp)["_id"].(string)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"id mal formado", http.MethodGet, "/api/categories/123", ana.token, nil, fiber.StatusBadRequest, "INVALID_ID"},
		{"inexistente", http.MethodGet, "/api/recipes/00000000-0000-4000-8000-000000000009", ana.token, nil, fiber.StatusNotFound, "NOT_FOUND"},
		{"ajena en lectura", http.MethodGet, "/api/categories/" + catID, beto.token, nil, fiber.StatusNotFound, "NOT_FOUND"},
		{"ajena en update", http.MethodPut, "/api/categories/" + catID, beto.token, map[string]any{"name": "x"}, fiber.StatusForbidden, "FORBIDDEN"},
		{"ajena en delete", http.MethodDelete, "/api/categories/" + catID, beto.token, nil, fiber.StatusForbidden, "FORBIDDEN"},
		{"create sin userId", http.MethodPost, "/api/categories", ana.token, map[string]any{"name": "x"}, fiber.StatusBadRequest, "VALIDATION"},
		{"create para otro", http.MethodPost, "/api/recipes", ana.token,
			map[string]any{"name": "x", "url": "https://a.com", "userId": beto.userID}, fiber.StatusForbidden, "FORBIDDEN"},
		{"rating fuera de rango", http.MethodPost, "/api/recipes", ana.token,
			map[string]any{"name": "x", "url": "https://a.com", "rating": 7, "userId": ana.userID}, fiber.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeMap(t, resp)["code"])
		})
	}

	resp = call(t, app, http.MethodGet, "/api/categories/"+catID, ana.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cenas", decodeMap(t, resp)["name"], "el intento ajeno no modificó la categoría")
}
