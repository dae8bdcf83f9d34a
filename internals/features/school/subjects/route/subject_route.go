// file: internals/features/school/subjects/route/subject_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	subjectController "sekolahku_backend/internals/features/school/subjects/controller"
	auth "sekolahku_backend/internals/middlewares/auth"
)

// SubjectRoutes dipasang di router yang sudah lewat AuthMiddleware.
func SubjectRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := subjectController.NewSubjectController(db)

	subjects := r.Group("/subjects")

	subjects.Get("/", ctrl.List)
	subjects.Get("/teacher/:teacherId", ctrl.ListByTeacher)

	adminOnly := auth.OnlyRoles(constants.RoleErrorAdmin("mengelola mapel"), constants.RoleAdmin)
	subjects.Post("/", adminOnly, ctrl.Create)
	subjects.Put("/:id", adminOnly, ctrl.Update)
	subjects.Delete("/:id", adminOnly, ctrl.Delete)
}
