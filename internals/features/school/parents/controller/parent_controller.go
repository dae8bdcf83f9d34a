// file: internals/features/school/parents/controller/parent_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/parents/dto"
	model "sekolahku_backend/internals/features/school/parents/model"
	helper "sekolahku_backend/internals/helpers"
)

type ParentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewParentController(db *gorm.DB) *ParentController {
	return &ParentController{
		DB:        db,
		Validator: validator.New(),
	}
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "23505")
}

// studentLitesByParentIDs: ambil semua siswa tertaut per wali dalam satu query join.
func (ctrl *ParentController) studentLitesByParentIDs(ids []uuid.UUID) map[uuid.UUID][]dto.StudentLite {
	out := make(map[uuid.UUID][]dto.StudentLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		ParentID  uuid.UUID `gorm:"column:parent_id"`
		ID        uuid.UUID `gorm:"column:id"`
		Name      string    `gorm:"column:name"`
		StudentID *string   `gorm:"column:student_id"`
	}
	if err := ctrl.DB.Table("parent_students").
		Select("parent_students.parent_id, users.id, users.name, users.student_id").
		Joins("JOIN users ON users.id = parent_students.student_id").
		Where("parent_students.parent_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.ParentID] = append(out[r.ParentID], dto.StudentLite{
			ID:        r.ID,
			Name:      r.Name,
			StudentID: r.StudentID,
		})
	}
	return out
}

func (ctrl *ParentController) toResponses(parents []model.ParentModel) []dto.ParentResponse {
	ids := make([]uuid.UUID, 0, len(parents))
	for i := range parents {
		ids = append(ids, parents[i].ID)
	}
	students := ctrl.studentLitesByParentIDs(ids)

	resp := make([]dto.ParentResponse, 0, len(parents))
	for i := range parents {
		resp = append(resp, dto.FromModel(&parents[i], students[parents[i].ID]))
	}
	return resp
}

func replaceStudentLinks(tx *gorm.DB, parentID uuid.UUID, studentIDs []uuid.UUID) error {
	if err := tx.Where("parent_id = ?", parentID).
		Delete(&model.ParentStudentModel{}).Error; err != nil {
		return err
	}
	if len(studentIDs) == 0 {
		return nil
	}
	links := make([]model.ParentStudentModel, 0, len(studentIDs))
	for _, sid := range studentIDs {
		links = append(links, model.ParentStudentModel{ParentID: parentID, StudentID: sid})
	}
	return tx.Create(&links).Error
}

/* =========================
   Handlers
========================= */

// GET /api/parents (admin/teacher/visitor via route)
func (ctrl *ParentController) List(c *fiber.Ctx) error {
	var parents []model.ParentModel
	if err := ctrl.DB.Order("created_at DESC").Find(&parents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data wali")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(parents))
}

// GET /api/parents/student/:id — wali dari satu siswa (semua role)
func (ctrl *ParentController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var parents []model.ParentModel
	if err := ctrl.DB.
		Joins("JOIN parent_students ON parent_students.parent_id = parents.id").
		Where("parent_students.student_id = ?", studentID).
		Order("parents.created_at DESC").
		Find(&parents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data wali")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(parents))
}

// POST /api/parents (ADMIN ONLY via route)
func (ctrl *ParentController) Create(c *fiber.Ctx) error {
	var body dto.CreateParentRequest
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
		return replaceStudentLinks(tx, m.ID, body.StudentIDs)
	}); err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor induk wali atau NIC sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan data wali")
	}

	resp := ctrl.toResponses([]model.ParentModel{*m})
	return helper.JsonCreated(c, "Data wali berhasil dibuat", resp[0])
}

// PUT /api/parents/:id (ADMIN ONLY via route)
func (ctrl *ParentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID wali tidak valid")
	}

	var body dto.UpdateParentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.ParentModel
	if err := ctrl.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data wali tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data wali")
	}

	body.ApplyToModel(&m)
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if body.StudentIDs != nil {
			return replaceStudentLinks(tx, m.ID, *body.StudentIDs)
		}
		return nil
	}); err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor induk wali atau NIC sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan data wali")
	}

	resp := ctrl.toResponses([]model.ParentModel{m})
	return helper.JsonUpdated(c, "Data wali berhasil diperbarui", resp[0])
}

// DELETE /api/parents/:id (ADMIN ONLY via route)
func (ctrl *ParentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID wali tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).
			Delete(&model.ParentStudentModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ParentModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data wali tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus data wali")
	}

	return helper.JsonDeleted(c, "Data wali berhasil dihapus", fiber.Map{"id": id})
}
