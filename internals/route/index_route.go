// file: internals/route/index_route.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	announcementRoute "sekolahku_backend/internals/features/school/announcements/route"
	assignmentRoute "sekolahku_backend/internals/features/school/assignments/route"
	classRoute "sekolahku_backend/internals/features/school/classes/route"
	parentRoute "sekolahku_backend/internals/features/school/parents/route"
	subjectRoute "sekolahku_backend/internals/features/school/subjects/route"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	userRoute "sekolahku_backend/internals/features/users/user/route"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang semua route aplikasi.
// /api/auth publik; sisanya di belakang AuthMiddleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	authRoute.AuthRoutes(app, db)

	// layanan file opsional: tanpa kredensial OSS, upload dimatikan
	var blob helperOSS.BlobService
	if svc, err := helperOSS.NewOSSBlobServiceFromEnv("sekolahku"); err != nil {
		log.Printf("⚠️ OSS tidak aktif, upload file dinonaktifkan: %v", err)
	} else {
		blob = svc
	}

	api := app.Group("/api", authMiddleware.AuthMiddleware())

	userRoute.UserRoutes(api, db)
	classRoute.ClassRoutes(api, db)
	subjectRoute.SubjectRoutes(api, db)
	parentRoute.ParentRoutes(api, db)
	announcementRoute.AnnouncementRoutes(api, db)
	assignmentRoute.AssignmentRoutes(api, db, blob)
}
