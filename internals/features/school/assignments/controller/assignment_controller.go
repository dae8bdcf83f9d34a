// file: internals/features/school/assignments/controller/assignment_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	dto "sekolahku_backend/internals/features/school/assignments/dto"
	model "sekolahku_backend/internals/features/school/assignments/model"
	"sekolahku_backend/internals/features/school/assignments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

type AssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Blob      helperOSS.BlobService // nil = upload file dinonaktifkan
}

func NewAssignmentController(db *gorm.DB, blob helperOSS.BlobService) *AssignmentController {
	return &AssignmentController{
		DB:        db,
		Validator: validator.New(),
		Blob:      blob,
	}
}

/* =========================
   Lite joins
========================= */

func (ctrl *AssignmentController) classLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.ClassLite {
	out := make(map[uuid.UUID]dto.ClassLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		ID   uuid.UUID `gorm:"column:class_id"`
		Name string    `gorm:"column:class_name"`
	}
	if err := ctrl.DB.Table("classes").
		Select("class_id, class_name").
		Where("class_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.ID] = dto.ClassLite{ID: r.ID, Name: r.Name}
	}
	return out
}

func (ctrl *AssignmentController) teacherLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.TeacherLite {
	out := make(map[uuid.UUID]dto.TeacherLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		ID   uuid.UUID `gorm:"column:id"`
		Name string    `gorm:"column:name"`
	}
	if err := ctrl.DB.Table("users").
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.ID] = dto.TeacherLite{ID: r.ID, Name: r.Name}
	}
	return out
}

func (ctrl *AssignmentController) studentLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.StudentLite {
	out := make(map[uuid.UUID]dto.StudentLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		ID        uuid.UUID `gorm:"column:id"`
		Name      string    `gorm:"column:name"`
		StudentID *string   `gorm:"column:student_id"`
	}
	if err := ctrl.DB.Table("users").
		Select("id, name, student_id").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.ID] = dto.StudentLite{ID: r.ID, Name: r.Name, StudentID: r.StudentID}
	}
	return out
}

// toResponses merangkai assignment + submissions (urut created_at ASC supaya
// submission yang ditimpa tetap di posisi lamanya) + Lite kelas/guru/siswa.
// Gagal memuat submissions = error: itu isi agregat, bukan sekadar dekorasi nama.
func (ctrl *AssignmentController) toResponses(assignments []model.AssignmentModel, now time.Time) ([]dto.AssignmentResponse, error) {
	assignmentIDs := make([]uuid.UUID, 0, len(assignments))
	classIDs := make([]uuid.UUID, 0, len(assignments))
	teacherIDs := make([]uuid.UUID, 0, len(assignments))
	for i := range assignments {
		assignmentIDs = append(assignmentIDs, assignments[i].AssignmentID)
		classIDs = append(classIDs, assignments[i].AssignmentClassID)
		teacherIDs = append(teacherIDs, assignments[i].AssignmentTeacherID)
	}

	var subs []model.AssignmentSubmissionModel
	if len(assignmentIDs) > 0 {
		if err := ctrl.DB.
			Where("submission_assignment_id IN ?", assignmentIDs).
			Order("submission_created_at ASC").
			Find(&subs).Error; err != nil {
			return nil, err
		}
	}

	studentIDs := make([]uuid.UUID, 0, len(subs))
	subsByAssignment := make(map[uuid.UUID][]model.AssignmentSubmissionModel)
	for i := range subs {
		studentIDs = append(studentIDs, subs[i].SubmissionStudentID)
		subsByAssignment[subs[i].SubmissionAssignmentID] = append(
			subsByAssignment[subs[i].SubmissionAssignmentID], subs[i])
	}

	classes := ctrl.classLitesByIDs(classIDs)
	teachers := ctrl.teacherLitesByIDs(teacherIDs)
	students := ctrl.studentLitesByIDs(studentIDs)

	resp := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]

		var cl *dto.ClassLite
		if v, ok := classes[a.AssignmentClassID]; ok {
			cl = &v
		}
		var tl *dto.TeacherLite
		if v, ok := teachers[a.AssignmentTeacherID]; ok {
			tl = &v
		}

		subResponses := make([]dto.SubmissionResponse, 0, len(subsByAssignment[a.AssignmentID]))
		for _, s := range subsByAssignment[a.AssignmentID] {
			var sl *dto.StudentLite
			if v, ok := students[s.SubmissionStudentID]; ok {
				sl = &v
			}
			subResponses = append(subResponses, dto.SubmissionResponse{
				SubmissionID: s.SubmissionID,
				Student:      sl,
				FileURL:      s.SubmissionFileURL,
				Remarks:      s.SubmissionRemarks,
				SubmittedAt:  s.SubmissionSubmittedAt,
			})
		}

		resp = append(resp, dto.FromModel(a, cl, tl, service.PortalState(a, now), subResponses))
	}
	return resp, nil
}

// uploadIfMultipart: kalau request multipart & ada file, upload ke OSS dulu.
// Gagal upload = batal total (nothing persisted), 502 di pemanggil.
func (ctrl *AssignmentController) uploadIfMultipart(c *fiber.Ctx, dir string) (*string, error) {
	if !helperOSS.IsMultipart(c) {
		return nil, nil
	}
	fh, err := helperOSS.TryGetFormFile(c, "file")
	if err != nil || fh == nil {
		return nil, nil
	}
	if ctrl.Blob == nil {
		return nil, errors.New("layanan penyimpanan file belum dikonfigurasi")
	}
	url, err := ctrl.Blob.UploadAny(c.Context(), dir, fh)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

/* =========================
   Handlers
========================= */

// GET /api/assignments (semua role)
// Siswa hanya melihat tugas kelasnya sendiri; siswa tanpa kelas = daftar kosong.
func (ctrl *AssignmentController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	q := ctrl.DB.Model(&model.AssignmentModel{})

	if caller.Is(constants.RoleStudent) {
		var row struct {
			ClassID *uuid.UUID `gorm:"column:class_id"`
		}
		if err := ctrl.DB.Table("users").
			Select("class_id").
			Where("id = ?", caller.ID).
			Scan(&row).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas siswa")
		}
		if row.ClassID == nil {
			return helper.JsonOK(c, "ok", []dto.AssignmentResponse{})
		}
		q = q.Where("assignment_class_id = ?", *row.ClassID)
	}

	var assignments []model.AssignmentModel
	if err := q.Order("assignment_created_at DESC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	resp, err := ctrl.toResponses(assignments, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jawaban")
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/assignments (teacher/admin via route)
// teacher_id SELALU dari caller, bukan dari body.
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	var body dto.CreateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// kelas harus ada sebelum ada side effect apa pun
	var classCount int64
	if err := ctrl.DB.Table("classes").
		Where("class_id = ?", body.AssignmentClassID).
		Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kelas")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kelas tidak ditemukan")
	}

	// upload dulu, insert belakangan; gagal upload = tidak ada yang tersimpan
	uploadedURL, upErr := ctrl.uploadIfMultipart(c, "assignments")
	if upErr != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadGateway,
			helper.CodeUpstreamFailure, "Gagal mengunggah file tugas")
	}

	m := body.ToModel(caller.ID)
	if uploadedURL != nil {
		m.AssignmentFileURL = uploadedURL
	}

	if err := ctrl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan tugas")
	}

	resp, err := ctrl.toResponses([]model.AssignmentModel{*m}, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jawaban")
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", resp[0])
}

// PUT /api/assignments/:id (teacher/admin via route)
// file_url lama dipertahankan kecuali dikirim eksplisit (body atau multipart).
// Mengubah deadline tidak menyentuh is_portal_open.
func (ctrl *AssignmentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	var body dto.UpdateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.AssignmentModel
	if err := ctrl.DB.First(&m, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	if body.AssignmentClassID != nil {
		var classCount int64
		if err := ctrl.DB.Table("classes").
			Where("class_id = ?", *body.AssignmentClassID).
			Count(&classCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kelas")
		}
		if classCount == 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Kelas tidak ditemukan")
		}
	}

	uploadedURL, upErr := ctrl.uploadIfMultipart(c, "assignments")
	if upErr != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadGateway,
			helper.CodeUpstreamFailure, "Gagal mengunggah file tugas")
	}

	body.ApplyToModel(&m)
	if uploadedURL != nil {
		m.AssignmentFileURL = uploadedURL
	}

	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan tugas")
	}

	resp, err := ctrl.toResponses([]model.AssignmentModel{m}, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jawaban")
	}
	return helper.JsonUpdated(c, "Tugas berhasil diperbarui", resp[0])
}

// DELETE /api/assignments/:id (teacher/admin via route)
// Submissions ikut terhapus dalam satu transaksi.
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_assignment_id = ?", id).
			Delete(&model.AssignmentSubmissionModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.AssignmentModel{}, "assignment_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tugas")
	}

	return helper.JsonDeleted(c, "Tugas berhasil dihapus", fiber.Map{"assignment_id": id})
}

// PUT /api/assignments/:id/toggle (teacher/admin via route)
// Membalik is_portal_open dan mengembalikan baris terbaru.
func (ctrl *AssignmentController) TogglePortal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	var m model.AssignmentModel
	if err := ctrl.DB.First(&m, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	m.AssignmentIsPortalOpen = !m.AssignmentIsPortalOpen
	if err := ctrl.DB.Model(&m).
		Update("assignment_is_portal_open", m.AssignmentIsPortalOpen).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status portal")
	}

	msg := "Portal pengumpulan ditutup"
	if m.AssignmentIsPortalOpen {
		msg = "Portal pengumpulan dibuka"
	}
	resp, err := ctrl.toResponses([]model.AssignmentModel{m}, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jawaban")
	}
	return helper.JsonUpdated(c, msg, resp[0])
}

// POST /api/assignments/:id/submit (STUDENT ONLY via route)
// Submit ulang menimpa submission lama lewat satu upsert atomik.
func (ctrl *AssignmentController) Submit(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	var body dto.SubmitAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var a model.AssignmentModel
	if err := ctrl.DB.First(&a, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	now := time.Now()
	if !service.CanSubmit(&a, now) {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest,
			helper.CodePortalClosed, "Portal pengumpulan sudah ditutup")
	}

	// file jawaban: multipart diunggah ke OSS, atau URL dari body
	fileURL := body.SubmissionFileURL
	uploadedURL, upErr := ctrl.uploadIfMultipart(c, "submissions")
	if upErr != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadGateway,
			helper.CodeUpstreamFailure, "Gagal mengunggah file jawaban")
	}
	if uploadedURL != nil {
		fileURL = uploadedURL
	}
	if fileURL == nil || *fileURL == "" {
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity,
			helper.CodeValidationError, "File jawaban wajib diisi")
	}

	sub := model.AssignmentSubmissionModel{
		SubmissionAssignmentID: a.AssignmentID,
		SubmissionStudentID:    caller.ID,
		SubmissionFileURL:      *fileURL,
		SubmissionRemarks:      body.SubmissionRemarks,
		SubmissionSubmittedAt:  now,
	}

	// satu upsert atomik: submit ganda dari siswa yang sama menimpa baris yang sama
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "submission_assignment_id"},
			{Name: "submission_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"submission_file_url",
			"submission_remarks",
			"submission_submitted_at",
		}),
	}).Create(&sub).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan jawaban")
	}

	// 200, bukan 201: submit ulang menimpa baris yang sama
	resp, err := ctrl.toResponses([]model.AssignmentModel{a}, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jawaban")
	}
	return helper.JsonOK(c, "Jawaban berhasil dikumpulkan", resp[0])
}
