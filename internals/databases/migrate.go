// file: internals/databases/migrate.go
package database

import (
	"log"

	"gorm.io/gorm"

	announcementModel "sekolahku_backend/internals/features/school/announcements/model"
	assignmentModel "sekolahku_backend/internals/features/school/assignments/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	parentModel "sekolahku_backend/internals/features/school/parents/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// MigrateAll menjalankan AutoMigrate semua model aplikasi saat boot.
// Test memakai skema sqlite tersendiri di internals/databases/testdb.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&parentModel.ParentModel{},
		&parentModel.ParentStudentModel{},
		&announcementModel.AnnouncementModel{},
		&assignmentModel.AssignmentModel{},
		&assignmentModel.AssignmentSubmissionModel{},
	)
}

func MustMigrate(db *gorm.DB) {
	if err := MigrateAll(db); err != nil {
		log.Fatalf("❌ Gagal migrasi database: %v", err)
	}
	log.Println("✅ Migrasi database selesai")
}
