package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentModel struct {
	AssignmentID          uuid.UUID `gorm:"column:assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	AssignmentTitle       string    `gorm:"column:assignment_title;size:200;not null" json:"assignment_title"`
	AssignmentDescription *string   `gorm:"column:assignment_description;type:text" json:"assignment_description,omitempty"`

	AssignmentClassID uuid.UUID `gorm:"column:assignment_class_id;type:uuid;not null;index" json:"assignment_class_id"`
	AssignmentSubject string    `gorm:"column:assignment_subject;size:100;not null" json:"assignment_subject"`

	// Pembuat tugas. Diisi dari caller saat create dan tidak pernah diubah.
	AssignmentTeacherID uuid.UUID `gorm:"column:assignment_teacher_id;type:uuid;not null;index" json:"assignment_teacher_id"`

	AssignmentFileURL *string `gorm:"column:assignment_file_url;type:text" json:"assignment_file_url,omitempty"`

	AssignmentDeadline time.Time `gorm:"column:assignment_deadline;not null" json:"assignment_deadline"`
	// tanpa default di tag supaya nilai false ikut ter-INSERT apa adanya
	AssignmentIsPortalOpen bool `gorm:"column:assignment_is_portal_open;not null" json:"assignment_is_portal_open"`

	AssignmentCreatedAt time.Time `gorm:"column:assignment_created_at;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `gorm:"column:assignment_updated_at;autoUpdateTime" json:"assignment_updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}

// Satu siswa hanya punya satu submission per tugas; submit ulang
// menimpa baris yang sama lewat upsert di controller.
type AssignmentSubmissionModel struct {
	SubmissionID           uuid.UUID `gorm:"column:submission_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student" json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student" json:"submission_student_id"`

	SubmissionFileURL string  `gorm:"column:submission_file_url;type:text;not null" json:"submission_file_url"`
	SubmissionRemarks *string `gorm:"column:submission_remarks;type:text" json:"submission_remarks,omitempty"`

	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;not null" json:"submission_submitted_at"`
	SubmissionCreatedAt   time.Time `gorm:"column:submission_created_at;autoCreateTime" json:"submission_created_at"`
}

func (AssignmentSubmissionModel) TableName() string { return "assignment_submissions" }

func (m *AssignmentSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
