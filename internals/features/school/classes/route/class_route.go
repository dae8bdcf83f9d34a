// file: internals/features/school/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	classController "sekolahku_backend/internals/features/school/classes/controller"
	auth "sekolahku_backend/internals/middlewares/auth"
)

// ClassRoutes dipasang di router yang sudah lewat AuthMiddleware.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	classes := r.Group("/classes")

	classes.Get("/", ctrl.List)

	adminOnly := auth.OnlyRoles(constants.RoleErrorAdmin("mengelola kelas"), constants.RoleAdmin)
	classes.Post("/", adminOnly, ctrl.Create)
	classes.Put("/:id", adminOnly, ctrl.Update)
	classes.Delete("/:id", adminOnly, ctrl.Delete)
}
