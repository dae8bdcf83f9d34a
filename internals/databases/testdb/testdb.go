// Package testdb menyediakan database sqlite in-memory untuk test controller.
// Skema ditulis tangan karena DDL produksi memakai gen_random_uuid() (Postgres);
// pengisian ID di sqlite mengandalkan hook BeforeCreate pada tiap model.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const schema = `
CREATE TABLE users (
	id text PRIMARY KEY,
	name text NOT NULL,
	email text NOT NULL UNIQUE,
	password text NOT NULL,
	role text NOT NULL DEFAULT 'student',
	is_active numeric NOT NULL DEFAULT true,
	student_id text UNIQUE,
	class_id text,
	teacher_id text UNIQUE,
	subject_id text,
	register_date datetime,
	qualifications text,
	experience text,
	visitor_id text UNIQUE,
	department text,
	position text,
	nic text,
	gender text,
	image_url text,
	contact text,
	address text,
	dob datetime,
	created_at datetime,
	updated_at datetime
);

CREATE TABLE classes (
	class_id text PRIMARY KEY,
	class_name text NOT NULL,
	class_teacher_id text NOT NULL,
	class_room_number text,
	class_student_count integer NOT NULL DEFAULT 0,
	class_created_at datetime,
	class_updated_at datetime
);

CREATE TABLE subjects (
	subject_id text PRIMARY KEY,
	subject_name text NOT NULL,
	subject_code text NOT NULL UNIQUE,
	subject_teacher_id text,
	subject_description text,
	subject_created_at datetime,
	subject_updated_at datetime
);

CREATE TABLE parents (
	id text PRIMARY KEY,
	parent_id text NOT NULL UNIQUE,
	name text NOT NULL,
	type text NOT NULL,
	nic text UNIQUE,
	job text,
	dob datetime,
	address text,
	contact text,
	image_url text,
	created_at datetime,
	updated_at datetime
);

CREATE TABLE parent_students (
	parent_id text NOT NULL,
	student_id text NOT NULL,
	created_at datetime,
	PRIMARY KEY (parent_id, student_id)
);

CREATE TABLE announcements (
	id text PRIMARY KEY,
	title text NOT NULL,
	content text NOT NULL,
	target_roles text,
	created_by text NOT NULL,
	created_at datetime,
	updated_at datetime
);

CREATE TABLE assignments (
	assignment_id text PRIMARY KEY,
	assignment_title text NOT NULL,
	assignment_description text,
	assignment_class_id text NOT NULL,
	assignment_subject text NOT NULL,
	assignment_teacher_id text NOT NULL,
	assignment_file_url text,
	assignment_deadline datetime NOT NULL,
	assignment_is_portal_open numeric NOT NULL DEFAULT true,
	assignment_created_at datetime,
	assignment_updated_at datetime
);

CREATE TABLE assignment_submissions (
	submission_id text PRIMARY KEY,
	submission_assignment_id text NOT NULL,
	submission_student_id text NOT NULL,
	submission_file_url text NOT NULL,
	submission_remarks text,
	submission_submitted_at datetime NOT NULL,
	submission_created_at datetime,
	UNIQUE (submission_assignment_id, submission_student_id)
);
`

// Open membuka sqlite in-memory yang dibagikan antar koneksi pool
// (nama DB unik per test) dan membuat seluruh skema aplikasi.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gagal membuka sqlite in-memory: %v", err)
	}

	if err := db.Exec(schema).Error; err != nil {
		t.Fatalf("gagal membuat skema test: %v", err)
	}
	return db
}
