// file: internals/features/school/announcements/controller/announcement_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	dto "sekolahku_backend/internals/features/school/announcements/dto"
	model "sekolahku_backend/internals/features/school/announcements/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AnnouncementController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctrl *AnnouncementController) authorLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.AuthorLite {
	out := make(map[uuid.UUID]dto.AuthorLite, len(ids))
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
		out[r.ID] = dto.AuthorLite{ID: r.ID, Name: r.Name}
	}
	return out
}

func (ctrl *AnnouncementController) toResponses(items []model.AnnouncementModel) []dto.AnnouncementResponse {
	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].CreatedBy)
	}
	authors := ctrl.authorLitesByIDs(ids)

	resp := make([]dto.AnnouncementResponse, 0, len(items))
	for i := range items {
		var al *dto.AuthorLite
		if v, ok := authors[items[i].CreatedBy]; ok {
			al = &v
		}
		resp = append(resp, dto.FromModel(&items[i], al))
	}
	return resp
}

/* =========================
   Handlers
========================= */

// GET /api/announcements
// Admin melihat semua; role lain hanya pengumuman yang menyasar rolenya atau "all".
// Filter audience dilakukan di aplikasi, bukan di query.
func (ctrl *AnnouncementController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	var items []model.AnnouncementModel
	if err := ctrl.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}

	if !caller.Is(constants.RoleAdmin) {
		visible := items[:0]
		for i := range items {
			if items[i].IsVisibleTo(caller.Role) {
				visible = append(visible, items[i])
			}
		}
		items = visible
	}

	return helper.JsonOK(c, "ok", ctrl.toResponses(items))
}

// POST /api/announcements (ADMIN ONLY via route)
func (ctrl *AnnouncementController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	var body dto.CreateAnnouncementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel(caller.ID)
	if err := ctrl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengumuman")
	}

	resp := ctrl.toResponses([]model.AnnouncementModel{*m})
	return helper.JsonCreated(c, "Pengumuman berhasil dibuat", resp[0])
}

// PUT /api/announcements/:id (ADMIN ONLY via route)
func (ctrl *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengumuman tidak valid")
	}

	var body dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.AnnouncementModel
	if err := ctrl.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengumuman tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}

	body.ApplyToModel(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan pengumuman")
	}

	resp := ctrl.toResponses([]model.AnnouncementModel{m})
	return helper.JsonUpdated(c, "Pengumuman berhasil diperbarui", resp[0])
}

// DELETE /api/announcements/:id (ADMIN ONLY via route)
func (ctrl *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengumuman tidak valid")
	}

	res := ctrl.DB.Delete(&model.AnnouncementModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pengumuman")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengumuman tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Pengumuman berhasil dihapus", fiber.Map{"id": id})
}
