// file: internals/features/school/announcements/route/announcement_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	announcementController "sekolahku_backend/internals/features/school/announcements/controller"
	auth "sekolahku_backend/internals/middlewares/auth"
)

// AnnouncementRoutes dipasang di router yang sudah lewat AuthMiddleware.
func AnnouncementRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := announcementController.NewAnnouncementController(db)

	announcements := r.Group("/announcements")

	announcements.Get("/", ctrl.List)

	adminOnly := auth.OnlyRoles(constants.RoleErrorAdmin("mengelola pengumuman"), constants.RoleAdmin)
	announcements.Post("/", adminOnly, ctrl.Create)
	announcements.Put("/:id", adminOnly, ctrl.Update)
	announcements.Delete("/:id", adminOnly, ctrl.Delete)
}
