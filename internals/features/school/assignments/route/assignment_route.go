// file: internals/features/school/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	assignmentController "sekolahku_backend/internals/features/school/assignments/controller"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	auth "sekolahku_backend/internals/middlewares/auth"
)

// AssignmentRoutes dipasang di router yang sudah lewat AuthMiddleware.
func AssignmentRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := assignmentController.NewAssignmentController(db, blob)

	assignments := r.Group("/assignments")

	assignments.Get("/", ctrl.List)

	staffOnly := auth.OnlyRoles(constants.RoleErrorStaff("pengelolaan tugas"), constants.StaffRoles...)
	assignments.Post("/", staffOnly, ctrl.Create)
	assignments.Put("/:id/toggle", staffOnly, ctrl.TogglePortal)
	assignments.Put("/:id", staffOnly, ctrl.Update)
	assignments.Delete("/:id", staffOnly, ctrl.Delete)

	studentOnly := auth.OnlyRoles(constants.RoleErrorStudent("pengumpulan tugas"), constants.RoleStudent)
	assignments.Post("/:id/submit", studentOnly, ctrl.Submit)
}
