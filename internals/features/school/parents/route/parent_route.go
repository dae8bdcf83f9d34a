// file: internals/features/school/parents/route/parent_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	parentController "sekolahku_backend/internals/features/school/parents/controller"
	auth "sekolahku_backend/internals/middlewares/auth"
)

// ParentRoutes dipasang di router yang sudah lewat AuthMiddleware.
func ParentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := parentController.NewParentController(db)

	parents := r.Group("/parents")

	parents.Get("/",
		auth.OnlyRoles("❌ Siswa tidak boleh melihat seluruh data wali.", constants.ViewRoles...),
		ctrl.List,
	)
	parents.Get("/student/:id", ctrl.ListByStudent)

	adminOnly := auth.OnlyRoles(constants.RoleErrorAdmin("mengelola data wali"), constants.RoleAdmin)
	parents.Post("/", adminOnly, ctrl.Create)
	parents.Put("/:id", adminOnly, ctrl.Update)
	parents.Delete("/:id", adminOnly, ctrl.Delete)
}
