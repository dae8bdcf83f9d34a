package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	userController "sekolahku_backend/internals/features/users/user/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// UserRoutes dipasang pada router yang SUDAH ber-AuthMiddleware.
// Urutan penting: path spesifik (/teachers, /students) sebelum /:id.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	grp := r.Group("/users")
	grp.Get("/teachers", ctl.ListTeachers)
	grp.Get("/students",
		authMiddleware.OnlyRoles("Tidak diizinkan melihat daftar student", constants.ViewRoles...),
		ctl.ListStudents)
	grp.Get("/",
		authMiddleware.OnlyRoles("Tidak diizinkan melihat daftar user", constants.ViewRoles...),
		ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("update user"), constants.RoleAdmin),
		ctl.Update)
	grp.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("hapus user"), constants.RoleAdmin),
		ctl.Delete)
}
