package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AnnouncementModel struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title   string    `gorm:"column:title;size:200;not null" json:"title"`
	Content string    `gorm:"column:content;type:text;not null" json:"content"`

	// Role sasaran. Kosong dianggap {all}.
	TargetRoles pq.StringArray `gorm:"column:target_roles;type:text[]" json:"target_roles"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"created_by"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsVisibleTo: true bila pengumuman menyasar role ini atau "all".
func (m *AnnouncementModel) IsVisibleTo(role string) bool {
	if len(m.TargetRoles) == 0 {
		return true
	}
	for _, t := range m.TargetRoles {
		if t == role || t == "all" {
			return true
		}
	}
	return false
}
