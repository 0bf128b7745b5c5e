package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-kardex/internal/domain/access"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/almacen-kardex/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-kardex/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "prueba"
	testIssuer    = "almacen-kardex-test"
	testExpMin    = 60
)

// testRoles roles sembrados en el store del middleware; "" y "vendedor" no son válidos.
var testRoles = []string{"admin", "operador", "consulta", "vendedor", ""}

// userIDForRole ID del usuario sembrado con ese rol.
func userIDForRole(role string) string { return "user-" + role }

// seedRoleUsers crea un usuario activo por cada rol de testRoles.
func seedRoleUsers(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	for _, role := range testRoles {
		require.NoError(t, store.Users().Create(context.Background(), &entity.User{
			ID: userIDForRole(role), Username: testUsername + "-" + role, Role: entity.Role(role),
			Active: true, CreatedAt: now, UpdatedAt: now,
		}))
	}
	return store
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el usuario guardado
//   - RequireAccess para autorizar el acceso al módulo
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, module access.Module, action access.Action) *fiber.App {
	t.Helper()
	return buildTestAppWithStore(seedRoleUsers(t), module, action)
}

func buildTestAppWithStore(store *memory.Store, module access.Module, action access.Action) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, store.Users()),
		apphttp.RequireAccess(module, action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario y rol indicados.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// tokenForRole genera un JWT del usuario sembrado con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return tokenFor(t, userIDForRole(role), role)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAccess_AdminAccedeAUsuarios(t *testing.T) {
	app := buildTestApp(t, access.ModuleUsers, access.ActionWrite)
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin tiene acceso total")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireAccess_OperadorRegistraMovimientos(t *testing.T) {
	app := buildTestApp(t, access.ModuleMovements, access.ActionWrite)
	resp := doRequest(t, app, tokenForRole(t, "operador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAccess_ConsultaBloqueadaEnEscritura(t *testing.T) {
	app := buildTestApp(t, access.ModuleMovements, access.ActionWrite)
	resp := doRequest(t, app, tokenForRole(t, "consulta"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireAccess_RolDesconocidoBloqueado(t *testing.T) {
	app := buildTestApp(t, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAccess_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(t, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireAccess_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccess_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "Basic abc")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, seedRoleUsers(t).Users()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "operador"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userIDForRole("operador"), body["user_id"])
	assert.Equal(t, testUsername+"-operador", body["username"])
	assert.Equal(t, "operador", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: el usuario guardado manda sobre el token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RolDelUsuarioGuardado(t *testing.T) {
	app := buildTestApp(t, access.ModuleMovements, access.ActionWrite)
	// el token dice admin pero el usuario guardado es consulta
	resp := doRequest(t, app, tokenFor(t, userIDForRole("consulta"), "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "consulta")
}

func TestAuthMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	app := buildTestApp(t, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, tokenFor(t, "no-existe", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInactivo_Retorna403(t *testing.T) {
	store := seedRoleUsers(t)
	ctx := context.Background()
	u, err := store.Users().GetByID(ctx, userIDForRole("admin"))
	require.NoError(t, err)
	u.Active = false
	require.NoError(t, store.Users().Update(ctx, u))

	app := buildTestAppWithStore(store, access.ModuleReports, access.ActionRead)
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "USER_INACTIVE")
}
