package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ParentID string    `gorm:"column:parent_id;size:50;not null;uniqueIndex" json:"parent_id"` // nomor induk wali
	Name     string    `gorm:"column:name;size:100;not null" json:"name"`
	// Mother | Father | Guardian
	Type string `gorm:"column:type;size:20;not null" json:"type"`

	NIC      *string    `gorm:"column:nic;size:50;uniqueIndex" json:"nic,omitempty"`
	Job      *string    `gorm:"column:job;size:100" json:"job,omitempty"`
	DOB      *time.Time `gorm:"column:dob" json:"dob,omitempty"`
	Address  *string    `gorm:"column:address;size:255" json:"address,omitempty"`
	Contact  *string    `gorm:"column:contact;size:50" json:"contact,omitempty"`
	ImageURL *string    `gorm:"column:image_url;type:text" json:"image_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ParentModel) TableName() string { return "parents" }

func (m *ParentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ParentStudentModel: tabel penghubung wali ↔ siswa (users dengan role student).
type ParentStudentModel struct {
	ParentID  uuid.UUID `gorm:"column:parent_id;type:uuid;primaryKey" json:"parent_id"`
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ParentStudentModel) TableName() string { return "parent_students" }
