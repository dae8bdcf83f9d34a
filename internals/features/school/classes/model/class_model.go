package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID           uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	ClassName         string    `gorm:"column:class_name;size:100;not null" json:"class_name"` // mis. Grade 10-A
	ClassTeacherID    uuid.UUID `gorm:"column:class_teacher_id;type:uuid;not null" json:"class_teacher_id"`
	ClassRoomNumber   *string   `gorm:"column:class_room_number;size:20" json:"class_room_number,omitempty"`
	ClassStudentCount int       `gorm:"column:class_student_count;not null;default:0" json:"class_student_count"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
