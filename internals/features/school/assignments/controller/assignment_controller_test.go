package controller_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "sekolahku_backend/internals/databases/testdb"
	assignmentModel "sekolahku_backend/internals/features/school/assignments/model"
	assignmentRoute "sekolahku_backend/internals/features/school/assignments/route"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

/* =========================
   Harness
========================= */

// testAuth meniru AuthMiddleware: identitas caller dibaca dari header test.
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

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *helperOSS.MockBlobService) {
	t.Helper()
	db := database.Open(t)
	blob := &helperOSS.MockBlobService{}

	app := fiber.New()
	api := app.Group("/api", testAuth())
	assignmentRoute.AssignmentRoutes(api, db, blob)
	return app, db, blob
}

func seedTeacher(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:     "Bu Ratna",
		Email:    uuid.NewString() + "@sekolah.test",
		Password: "x",
		Role:     "teacher",
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedStudent(t *testing.T, db *gorm.DB, classID *uuid.UUID) *userModel.UserModel {
	t.Helper()
	sid := "STU-" + uuid.NewString()[:8]
	u := &userModel.UserModel{
		Name:      "Andi",
		Email:     uuid.NewString() + "@sekolah.test",
		Password:  "x",
		Role:      "student",
		IsActive:  true,
		StudentID: &sid,
		ClassID:   classID,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedClass(t *testing.T, db *gorm.DB, teacherID uuid.UUID, name string) *classModel.ClassModel {
	t.Helper()
	m := &classModel.ClassModel{ClassName: name, ClassTeacherID: teacherID}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedAssignment(t *testing.T, db *gorm.DB, classID, teacherID uuid.UUID, open bool, deadline time.Time) *assignmentModel.AssignmentModel {
	t.Helper()
	m := &assignmentModel.AssignmentModel{
		AssignmentTitle:        "Laporan Praktikum",
		AssignmentClassID:      classID,
		AssignmentSubject:      "IPA",
		AssignmentTeacherID:    teacherID,
		AssignmentDeadline:     deadline,
		AssignmentIsPortalOpen: open,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, userID, role string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	req.Header.Set("X-Test-Role", role)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

/* =========================
   List
========================= */

func TestListAssignments_StudentSeesOnlyOwnClass(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	classA := seedClass(t, db, teacher.ID, "Grade 10-A")
	classB := seedClass(t, db, teacher.ID, "Grade 10-B")
	student := seedStudent(t, db, &classA.ClassID)

	seedAssignment(t, db, classA.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))
	seedAssignment(t, db, classB.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "GET", "/api/assignments", nil, student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	data := env["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, classA.ClassID.String(), first["assignment_class"].(map[string]any)["id"])
}

func TestListAssignments_StudentWithoutClassGetsEmptyList(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 11-A")
	student := seedStudent(t, db, nil)

	seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "GET", "/api/assignments", nil, student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Empty(t, env["data"])
}

func TestListAssignments_TeacherSeesAll(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	classA := seedClass(t, db, teacher.ID, "Grade 10-A")
	classB := seedClass(t, db, teacher.ID, "Grade 10-B")

	seedAssignment(t, db, classA.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))
	seedAssignment(t, db, classB.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "GET", "/api/assignments", nil, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Len(t, env["data"], 2)
}

func TestListAssignments_SubmissionLoadFailureIs500(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// paksa query submissions gagal: jawaban yang tersimpan tidak boleh
	// diam-diam hilang dari response sukses
	require.NoError(t, db.Exec("DROP TABLE assignment_submissions").Error)

	resp = doJSON(t, app, "GET", "/api/assignments", nil, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
}

/* =========================
   Create
========================= */

func TestCreateAssignment_TeacherIDForcedFromCaller(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	other := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")

	body := fiber.Map{
		"assignment_title":      "Esai Sejarah",
		"assignment_class_id":   class.ClassID,
		"assignment_subject":    "Sejarah",
		"assignment_deadline":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"assignment_teacher_id": other.ID, // harus diabaikan
	}
	resp := doJSON(t, app, "POST", "/api/assignments", body, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var saved assignmentModel.AssignmentModel
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, teacher.ID, saved.AssignmentTeacherID)
	assert.True(t, saved.AssignmentIsPortalOpen)
}

func TestCreateAssignment_UnknownClassRejected(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)

	body := fiber.Map{
		"assignment_title":    "Esai Sejarah",
		"assignment_class_id": uuid.New(),
		"assignment_subject":  "Sejarah",
		"assignment_deadline": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
	resp := doJSON(t, app, "POST", "/api/assignments", body, teacher.ID.String(), "teacher")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&assignmentModel.AssignmentModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateAssignment_StudentForbidden(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)

	body := fiber.Map{
		"assignment_title":    "Curang",
		"assignment_class_id": class.ClassID,
		"assignment_subject":  "IPA",
		"assignment_deadline": time.Now().Add(time.Hour).Format(time.RFC3339),
	}
	resp := doJSON(t, app, "POST", "/api/assignments", body, student.ID.String(), "student")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "FORBIDDEN", env["error_code"])
}

func TestCreateAssignment_UploadFailureAborts(t *testing.T) {
	app, db, blob := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	blob.FailWith = errors.New("bucket unreachable")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("assignment_title", "Laporan"))
	require.NoError(t, w.WriteField("assignment_class_id", class.ClassID.String()))
	require.NoError(t, w.WriteField("assignment_subject", "IPA"))
	require.NoError(t, w.WriteField("assignment_deadline", time.Now().Add(time.Hour).Format(time.RFC3339)))
	fw, err := w.CreateFormFile("file", "soal.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4 dummy"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/assignments", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Test-User", teacher.ID.String())
	req.Header.Set("X-Test-Role", "teacher")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "UPSTREAM_FAILURE", env["error_code"])

	// gagal upload = tidak ada baris yang tersimpan
	var count int64
	db.Model(&assignmentModel.AssignmentModel{}).Count(&count)
	assert.Zero(t, count)
}

/* =========================
   Update
========================= */

func TestUpdateAssignment_FileURLPreservedUnlessSupplied(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))
	oldURL := "https://files.test/soal-lama.pdf"
	require.NoError(t, db.Model(a).Update("assignment_file_url", oldURL).Error)

	// update tanpa file_url → file lama bertahan
	resp := doJSON(t, app, "PUT", "/api/assignments/"+a.AssignmentID.String(),
		fiber.Map{"assignment_title": "Judul Baru"}, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var saved assignmentModel.AssignmentModel
	require.NoError(t, db.First(&saved, "assignment_id = ?", a.AssignmentID).Error)
	require.NotNil(t, saved.AssignmentFileURL)
	assert.Equal(t, oldURL, *saved.AssignmentFileURL)
	assert.Equal(t, "Judul Baru", saved.AssignmentTitle)

	// update dengan file_url eksplisit → tergantikan
	newURL := "https://files.test/soal-baru.pdf"
	resp = doJSON(t, app, "PUT", "/api/assignments/"+a.AssignmentID.String(),
		fiber.Map{"assignment_file_url": newURL}, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&saved, "assignment_id = ?", a.AssignmentID).Error)
	require.NotNil(t, saved.AssignmentFileURL)
	assert.Equal(t, newURL, *saved.AssignmentFileURL)
}

func TestUpdateAssignment_ExtendingDeadlineKeepsManualCloseIntact(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	a := seedAssignment(t, db, class.ClassID, teacher.ID, false, time.Now().Add(time.Hour))

	resp := doJSON(t, app, "PUT", "/api/assignments/"+a.AssignmentID.String(),
		fiber.Map{"assignment_deadline": time.Now().Add(72 * time.Hour).Format(time.RFC3339)},
		teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var saved assignmentModel.AssignmentModel
	require.NoError(t, db.First(&saved, "assignment_id = ?", a.AssignmentID).Error)
	assert.False(t, saved.AssignmentIsPortalOpen, "perpanjangan deadline tidak boleh membuka portal yang ditutup manual")
}

func TestUpdateAssignment_NotFound(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)

	resp := doJSON(t, app, "PUT", "/api/assignments/"+uuid.NewString(),
		fiber.Map{"assignment_title": "X Y"}, teacher.ID.String(), "teacher")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

/* =========================
   Toggle
========================= */

func TestTogglePortal_FlipsAndFlipsBack(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "PUT", "/api/assignments/"+a.AssignmentID.String()+"/toggle", nil, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var saved assignmentModel.AssignmentModel
	require.NoError(t, db.First(&saved, "assignment_id = ?", a.AssignmentID).Error)
	assert.False(t, saved.AssignmentIsPortalOpen)

	resp = doJSON(t, app, "PUT", "/api/assignments/"+a.AssignmentID.String()+"/toggle", nil, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&saved, "assignment_id = ?", a.AssignmentID).Error)
	assert.True(t, saved.AssignmentIsPortalOpen, "dua kali toggle harus kembali ke keadaan awal")
}

/* =========================
   Submit
========================= */

func TestSubmit_UnknownAssignment(t *testing.T) {
	app, db, _ := newTestApp(t)
	student := seedStudent(t, db, nil)

	resp := doJSON(t, app, "POST", "/api/assignments/"+uuid.NewString()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		student.ID.String(), "student")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmit_PortalClosedManually(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, false, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "PORTAL_CLOSED", env["error_code"])
}

func TestSubmit_PastDeadlineRejected(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(-time.Minute))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "PORTAL_CLOSED", env["error_code"])
}

func TestSubmit_ResubmitReplacesSingleRow(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/v1.pdf"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/v2.pdf", "submission_remarks": "revisi"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "submit ulang tetap 200, bukan 201")

	var subs []assignmentModel.AssignmentSubmissionModel
	require.NoError(t, db.Where("submission_assignment_id = ?", a.AssignmentID).Find(&subs).Error)
	require.Len(t, subs, 1, "submit ulang harus menimpa, bukan menambah baris")
	assert.Equal(t, "https://files.test/v2.pdf", subs[0].SubmissionFileURL)
	assert.Equal(t, student.ID, subs[0].SubmissionStudentID)
	require.NotNil(t, subs[0].SubmissionRemarks)
	assert.Equal(t, "revisi", *subs[0].SubmissionRemarks)
}

func TestSubmit_TwoStudentsTwoRows(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	s1 := seedStudent(t, db, &class.ClassID)
	s2 := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	for _, s := range []*userModel.UserModel{s1, s2} {
		resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
			fiber.Map{"submission_file_url": "https://files.test/" + s.ID.String() + ".pdf"},
			s.ID.String(), "student")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	db.Model(&assignmentModel.AssignmentSubmissionModel{}).
		Where("submission_assignment_id = ?", a.AssignmentID).
		Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestSubmit_TeacherForbidden(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		teacher.ID.String(), "teacher")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSubmit_MissingFileRejected(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_remarks": "tanpa file"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", env["error_code"])
}

/* =========================
   Delete
========================= */

func TestDeleteAssignment_CascadesSubmissions(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)
	class := seedClass(t, db, teacher.ID, "Grade 10-A")
	student := seedStudent(t, db, &class.ClassID)
	a := seedAssignment(t, db, class.ClassID, teacher.ID, true, time.Now().Add(24*time.Hour))

	resp := doJSON(t, app, "POST", "/api/assignments/"+a.AssignmentID.String()+"/submit",
		fiber.Map{"submission_file_url": "https://files.test/jawaban.pdf"},
		student.ID.String(), "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/assignments/"+a.AssignmentID.String(), nil, teacher.ID.String(), "teacher")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var aCount, sCount int64
	db.Model(&assignmentModel.AssignmentModel{}).Count(&aCount)
	db.Model(&assignmentModel.AssignmentSubmissionModel{}).Count(&sCount)
	assert.Zero(t, aCount)
	assert.Zero(t, sCount, "submissions ikut terhapus bersama tugasnya")
}

func TestDeleteAssignment_NotFound(t *testing.T) {
	app, db, _ := newTestApp(t)
	teacher := seedTeacher(t, db)

	resp := doJSON(t, app, "DELETE", "/api/assignments/"+uuid.NewString(), nil, teacher.ID.String(), "teacher")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
