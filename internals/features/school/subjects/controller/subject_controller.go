// file: internals/features/school/subjects/controller/subject_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/subjects/dto"
	model "sekolahku_backend/internals/features/school/subjects/model"
	helper "sekolahku_backend/internals/helpers"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctrl *SubjectController) teacherLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.TeacherLite {
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

func (ctrl *SubjectController) toResponses(subjects []model.SubjectModel) []dto.SubjectResponse {
	ids := make([]uuid.UUID, 0, len(subjects))
	for i := range subjects {
		if subjects[i].SubjectTeacherID != nil {
			ids = append(ids, *subjects[i].SubjectTeacherID)
		}
	}
	teachers := ctrl.teacherLitesByIDs(ids)

	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		var tl *dto.TeacherLite
		if subjects[i].SubjectTeacherID != nil {
			if v, ok := teachers[*subjects[i].SubjectTeacherID]; ok {
				tl = &v
			}
		}
		resp = append(resp, dto.FromModel(&subjects[i], tl))
	}
	return resp
}

// Sinkronkan users.subject_id dengan pengampu mapel (back-fill dua arah).
// Dipanggil di dalam transaksi supaya subject & user tidak sempat tidak konsisten.
func syncTeacherSubject(tx *gorm.DB, subjectID uuid.UUID, oldTeacherID, newTeacherID *uuid.UUID) error {
	sameTeacher := (oldTeacherID == nil && newTeacherID == nil) ||
		(oldTeacherID != nil && newTeacherID != nil && *oldTeacherID == *newTeacherID)
	if sameTeacher {
		return nil
	}
	if oldTeacherID != nil {
		if err := tx.Table("users").
			Where("id = ? AND subject_id = ?", *oldTeacherID, subjectID).
			Update("subject_id", nil).Error; err != nil {
			return err
		}
	}
	if newTeacherID != nil {
		if err := tx.Table("users").
			Where("id = ?", *newTeacherID).
			Update("subject_id", subjectID).Error; err != nil {
			return err
		}
	}
	return nil
}

/* =========================
   Handlers
========================= */

// GET /api/subjects (semua role)
func (ctrl *SubjectController) List(c *fiber.Ctx) error {
	var subjects []model.SubjectModel
	if err := ctrl.DB.Order("subject_name ASC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data mapel")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(subjects))
}

// GET /api/subjects/teacher/:teacherId — mapel yang diampu seorang guru
func (ctrl *SubjectController) ListByTeacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID guru tidak valid")
	}

	var subjects []model.SubjectModel
	if err := ctrl.DB.
		Where("subject_teacher_id = ?", teacherID).
		Order("subject_name ASC").
		Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data mapel")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(subjects))
}

// POST /api/subjects (ADMIN ONLY via route)
func (ctrl *SubjectController) Create(c *fiber.Ctx) error {
	var body dto.CreateSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel()

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return syncTeacherSubject(tx, m.SubjectID, nil, m.SubjectTeacherID)
	}); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(err.Error(), "23505") {
			return helper.JsonError(c, fiber.StatusConflict, "Kode mapel sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan mapel")
	}

	resp := ctrl.toResponses([]model.SubjectModel{*m})
	return helper.JsonCreated(c, "Mapel berhasil dibuat", resp[0])
}

// PUT /api/subjects/:id (ADMIN ONLY via route)
func (ctrl *SubjectController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
	}

	var body dto.UpdateSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.SubjectModel
	if err := ctrl.DB.First(&m, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Mapel tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data mapel")
	}

	oldTeacher := m.SubjectTeacherID
	body.ApplyToModel(&m)

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return syncTeacherSubject(tx, m.SubjectID, oldTeacher, m.SubjectTeacherID)
	}); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(err.Error(), "23505") {
			return helper.JsonError(c, fiber.StatusConflict, "Kode mapel sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan mapel")
	}

	resp := ctrl.toResponses([]model.SubjectModel{m})
	return helper.JsonUpdated(c, "Mapel berhasil diperbarui", resp[0])
}

// DELETE /api/subjects/:id (ADMIN ONLY via route)
func (ctrl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// lepaskan link pengampu supaya users.subject_id tidak menggantung
		if err := tx.Table("users").
			Where("subject_id = ?", id).
			Update("subject_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.SubjectModel{}, "subject_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Mapel tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus mapel")
	}

	return helper.JsonDeleted(c, "Mapel berhasil dihapus", fiber.Map{"subject_id": id})
}
