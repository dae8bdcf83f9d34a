package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database.
// Satu tabel untuk semua role; kolom spesifik role dibiarkan nullable.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:255;unique;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	IsActive bool      `gorm:"not null" json:"is_active"`

	// Student
	StudentID *string    `gorm:"size:50;uniqueIndex" json:"student_id,omitempty"`
	ClassID   *uuid.UUID `gorm:"type:uuid;index" json:"class_id,omitempty"` // grade si student

	// Teacher
	TeacherID      *string                      `gorm:"size:50;uniqueIndex" json:"teacher_id,omitempty"`
	SubjectID      *uuid.UUID                   `gorm:"type:uuid;index" json:"subject_id,omitempty"`
	RegisterDate   *time.Time                   `json:"register_date,omitempty"`
	Qualifications datatypes.JSONSlice[string]  `json:"qualifications,omitempty"`
	Experience     datatypes.JSONSlice[string]  `json:"experience,omitempty"`

	// Visitor
	VisitorID  *string `gorm:"size:50;uniqueIndex" json:"visitor_id,omitempty"`
	Department *string `gorm:"size:100" json:"department,omitempty"`
	Position   *string `gorm:"size:100" json:"position,omitempty"`
	NIC        *string `gorm:"size:50" json:"nic,omitempty"`

	// Common
	Gender   *string    `gorm:"size:10" json:"gender,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`
	Contact  *string    `gorm:"size:50" json:"contact,omitempty"`
	Address  *string    `json:"address,omitempty"`
	DOB      *time.Time `json:"dob,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate memastikan ID terisi juga di dialect tanpa gen_random_uuid (mis. sqlite saat test).
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
