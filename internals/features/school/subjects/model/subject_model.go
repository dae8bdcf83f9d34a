package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name;size:100;not null" json:"subject_name"`
	SubjectCode string    `gorm:"column:subject_code;size:20;not null;uniqueIndex" json:"subject_code"` // disimpan uppercase

	// Guru pengampu (opsional). Relasi by ID saja, join dilakukan di controller.
	SubjectTeacherID *uuid.UUID `gorm:"column:subject_teacher_id;type:uuid" json:"subject_teacher_id,omitempty"`

	SubjectDescription *string `gorm:"column:subject_description;type:text" json:"subject_description,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
