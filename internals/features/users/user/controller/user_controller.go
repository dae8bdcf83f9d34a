// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	dto "sekolahku_backend/internals/features/users/user/dto"
	model "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =========================
   Lite lookups (class & subject)
========================= */

func (ctrl *UserController) classLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.ClassLite {
	out := make(map[uuid.UUID]dto.ClassLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		ClassID   uuid.UUID `gorm:"column:class_id"`
		ClassName string    `gorm:"column:class_name"`
	}
	if err := ctrl.DB.Table("classes").
		Select("class_id, class_name").
		Where("class_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.ClassID] = dto.ClassLite{ID: r.ClassID, Name: r.ClassName}
	}
	return out
}

func (ctrl *UserController) subjectLitesByIDs(ids []uuid.UUID) map[uuid.UUID]dto.SubjectLite {
	out := make(map[uuid.UUID]dto.SubjectLite, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		SubjectID   uuid.UUID `gorm:"column:subject_id"`
		SubjectName string    `gorm:"column:subject_name"`
		SubjectCode string    `gorm:"column:subject_code"`
	}
	if err := ctrl.DB.Table("subjects").
		Select("subject_id, subject_name, subject_code").
		Where("subject_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.SubjectID] = dto.SubjectLite{ID: r.SubjectID, Name: r.SubjectName, Code: r.SubjectCode}
	}
	return out
}

func (ctrl *UserController) toResponses(users []model.UserModel) []dto.UserResponse {
	classIDs := make([]uuid.UUID, 0, len(users))
	subjectIDs := make([]uuid.UUID, 0, len(users))
	for i := range users {
		if users[i].ClassID != nil {
			classIDs = append(classIDs, *users[i].ClassID)
		}
		if users[i].SubjectID != nil {
			subjectIDs = append(subjectIDs, *users[i].SubjectID)
		}
	}
	classes := ctrl.classLitesByIDs(classIDs)
	subjects := ctrl.subjectLitesByIDs(subjectIDs)

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		var cl *dto.ClassLite
		var sl *dto.SubjectLite
		if users[i].ClassID != nil {
			if v, ok := classes[*users[i].ClassID]; ok {
				cl = &v
			}
		}
		if users[i].SubjectID != nil {
			if v, ok := subjects[*users[i].SubjectID]; ok {
				sl = &v
			}
		}
		resp = append(resp, dto.FromModel(&users[i], cl, sl))
	}
	return resp
}

/* =========================
   Handlers
========================= */

// GET /api/users/teachers (semua role)
func (ctrl *UserController) ListTeachers(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.
		Where("role = ?", constants.RoleTeacher).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data teacher")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(users))
}

// GET /api/users/students (admin/teacher/visitor)
func (ctrl *UserController) ListStudents(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.
		Where("role = ?", constants.RoleStudent).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data student")
	}
	return helper.JsonOK(c, "ok", ctrl.toResponses(users))
}

// GET /api/users?role=&page=&per_page= (admin/teacher/visitor)
func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.UserModel{})
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	var users []model.UserModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	return helper.JsonList(c, "ok", ctrl.toResponses(users),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/users/:id — admin/teacher/visitor bebas; student hanya dirinya sendiri
func (ctrl *UserController) GetByID(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	if !caller.IsAnyOf(constants.ViewRoles...) && caller.ID != id {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak diizinkan melihat profil ini")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	resp := ctrl.toResponses([]model.UserModel{user})
	return helper.JsonOK(c, "ok", resp[0])
}

// PUT /api/users/:id (ADMIN ONLY via route) — partial update
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	body.ApplyToModel(&user)
	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan user")
	}

	resp := ctrl.toResponses([]model.UserModel{user})
	return helper.JsonUpdated(c, "User berhasil diperbarui", resp[0])
}

// DELETE /api/users/:id (ADMIN ONLY via route)
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	res := ctrl.DB.Delete(&model.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
