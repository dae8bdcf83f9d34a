// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/classes/dto"
	model "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctrl *ClassController) teacherLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.TeacherLite {
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

func (ctrl *ClassController) toResponses(classes []model.ClassModel) []dto.ClassResponse {
	ids := make([]uuid.UUID, 0, len(classes))
	for i := range classes {
		ids = append(ids, classes[i].ClassTeacherID)
	}
	teachers := ctrl.teacherLitesByIDs(ids)

	resp := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		var tl *dto.TeacherLite
		if v, ok := teachers[classes[i].ClassTeacherID]; ok {
			tl = &v
		}
		resp = append(resp, dto.FromModel(&classes[i], tl))
	}
	return resp
}

/* =========================
   Handlers
========================= */

// GET /api/classes (semua role)
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	var classes []model.ClassModel
	if err := ctrl.DB.Order("class_created_at DESC").Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(classes))
}

// POST /api/classes (ADMIN ONLY via route)
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var body dto.CreateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kelas")
	}

	resp := ctrl.toResponses([]model.ClassModel{*m})
	return helper.JsonCreated(c, "Kelas berhasil dibuat", resp[0])
}

// PUT /api/classes/:id (ADMIN ONLY via route)
func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var body dto.UpdateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.ClassModel
	if err := ctrl.DB.First(&m, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}

	body.ApplyToModel(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan kelas")
	}

	resp := ctrl.toResponses([]model.ClassModel{m})
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", resp[0])
}

// DELETE /api/classes/:id (ADMIN ONLY via route)
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	res := ctrl.DB.Delete(&model.ClassModel{}, "class_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"class_id": id})
}
