package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "sekolahku_backend/internals/databases/testdb"
	userModel "sekolahku_backend/internals/features/users/user/model"
	userRoute "sekolahku_backend/internals/features/users/user/route"
)

func testAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := database.Open(t)
	app := fiber.New()
	api := app.Group("/api", testAuth())
	userRoute.UserRoutes(api, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:     name,
		Email:    uuid.NewString() + "@sekolah.test",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func do(t *testing.T, app *fiber.App, method, path string, body any, userID uuid.UUID, role string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", userID.String())
	req.Header.Set("X-Test-Role", role)
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

func TestGetUser_StudentOnlySeesOwnProfile(t *testing.T) {
	app, db := newTestApp(t)
	me := seedUser(t, db, "Andi", "student")
	other := seedUser(t, db, "Budi", "student")

	resp := do(t, app, "GET", "/api/users/"+me.ID.String(), nil, me.ID, "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Andi", decode(t, resp)["data"].(map[string]any)["name"])

	resp = do(t, app, "GET", "/api/users/"+other.ID.String(), nil, me.ID, "student")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetUser_TeacherSeesAnyProfile(t *testing.T) {
	app, db := newTestApp(t)
	teacher := seedUser(t, db, "Bu Ratna", "teacher")
	student := seedUser(t, db, "Andi", "student")

	resp := do(t, app, "GET", "/api/users/"+student.ID.String(), nil, teacher.ID, "teacher")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListUsers_RoleFilter(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "Admin", "admin")
	seedUser(t, db, "Guru 1", "teacher")
	seedUser(t, db, "Guru 2", "teacher")
	seedUser(t, db, "Siswa", "student")

	resp := do(t, app, "GET", "/api/users?role=teacher", nil, admin.ID, "admin")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["data"], 2)
}

func TestListStudents_ForbiddenForStudents(t *testing.T) {
	app, db := newTestApp(t)
	me := seedUser(t, db, "Andi", "student")

	resp := do(t, app, "GET", "/api/users/students", nil, me.ID, "student")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateUser_PartialKeepsOtherFields(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "Admin", "admin")
	contact := "0812000111"
	student := seedUser(t, db, "Andi", "student")
	require.NoError(t, db.Model(student).Update("contact", contact).Error)

	resp := do(t, app, "PUT", "/api/users/"+student.ID.String(),
		fiber.Map{"name": "Andi Wijaya"}, admin.ID, "admin")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var saved userModel.UserModel
	require.NoError(t, db.First(&saved, "id = ?", student.ID).Error)
	assert.Equal(t, "Andi Wijaya", saved.Name)
	require.NotNil(t, saved.Contact)
	assert.Equal(t, contact, *saved.Contact, "field yang tidak dikirim tidak boleh berubah")
}

func TestDeleteUser_AdminOnlyAnd404(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "Admin", "admin")
	teacher := seedUser(t, db, "Guru", "teacher")
	student := seedUser(t, db, "Andi", "student")

	resp := do(t, app, "DELETE", "/api/users/"+student.ID.String(), nil, teacher.ID, "teacher")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = do(t, app, "DELETE", "/api/users/"+student.ID.String(), nil, admin.ID, "admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "DELETE", "/api/users/"+student.ID.String(), nil, admin.ID, "admin")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
