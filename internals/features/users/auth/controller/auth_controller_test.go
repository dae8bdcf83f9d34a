package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases/testdb"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "rahasia-test"

	db := database.Open(t)
	app := fiber.New()
	authRoute.AuthRoutes(app, db)
	return app, db
}

func post(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerBody(email, role string) fiber.Map {
	return fiber.Map{
		"name":     "Siti Nurhaliza",
		"email":    email,
		"password": "katasandi123",
		"role":     role,
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	app, db := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("siti@sekolah.test", "student"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "email = ?", "siti@sekolah.test").Error)
	assert.Equal(t, "student", user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "katasandi123", user.Password, "password wajib tersimpan sebagai hash")

	resp = post(t, app, "/api/auth/login", fiber.Map{
		"email":    "siti@sekolah.test",
		"password": "katasandi123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	data := env["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "student", data["user"].(map[string]any)["role"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("dobel@sekolah.test", "teacher"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = post(t, app, "/api/auth/register", registerBody("dobel@sekolah.test", "teacher"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegister_UnknownRoleRejected(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("aneh@sekolah.test", "superuser"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("ani@sekolah.test", "student"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	wrongPass := post(t, app, "/api/auth/login", fiber.Map{
		"email":    "ani@sekolah.test",
		"password": "salah-total",
	})
	unknown := post(t, app, "/api/auth/login", fiber.Map{
		"email":    "tidak-ada@sekolah.test",
		"password": "salah-total",
	})

	require.Equal(t, fiber.StatusUnauthorized, wrongPass.StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)

	// pesan sengaja identik supaya tidak membocorkan email mana yang terdaftar
	assert.Equal(t, decode(t, wrongPass)["message"], decode(t, unknown)["message"])
}

func TestLogin_InactiveAccount(t *testing.T) {
	app, db := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("nonaktif@sekolah.test", "student"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("email = ?", "nonaktif@sekolah.test").
		Update("is_active", false).Error)

	resp = post(t, app, "/api/auth/login", fiber.Map{
		"email":    "nonaktif@sekolah.test",
		"password": "katasandi123",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// Alur penuh: login → token → /me lewat AuthMiddleware asli.
func TestMe_WithIssuedToken(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := post(t, app, "/api/auth/register", registerBody("profil@sekolah.test", "teacher"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = post(t, app, "/api/auth/login", fiber.Map{
		"email":    "profil@sekolah.test",
		"password": "katasandi123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decode(t, resp)["data"].(map[string]any)["token"].(string)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, meResp.StatusCode)

	me := decode(t, meResp)["data"].(map[string]any)
	assert.Equal(t, "profil@sekolah.test", me["email"])
	assert.Equal(t, "teacher", me["role"])
}

func TestMe_WithoutTokenUnauthorized(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
