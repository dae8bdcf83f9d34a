// file: internals/features/school/parents/dto/parent_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/parents/model"
)

/* ===================== REQUESTS ===================== */

type CreateParentRequest struct {
	ParentID string `json:"parent_id" validate:"required,min=2,max=50"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Type     string `json:"type" validate:"required,oneof=Mother Father Guardian"`

	NIC      *string `json:"nic" validate:"omitempty,max=50"`
	Job      *string `json:"job" validate:"omitempty,max=100"`
	DOB      *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	Contact  *string `json:"contact" validate:"omitempty,max=50"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`

	// ID user siswa yang ditautkan ke wali ini
	StudentIDs []uuid.UUID `json:"student_ids" validate:"omitempty,dive,required"`
}

func (r CreateParentRequest) ToModel() *model.ParentModel {
	m := &model.ParentModel{
		ParentID: strings.TrimSpace(r.ParentID),
		Name:     strings.TrimSpace(r.Name),
		Type:     r.Type,
		NIC:      r.NIC,
		Job:      r.Job,
		Address:  r.Address,
		Contact:  r.Contact,
		ImageURL: r.ImageURL,
	}
	if r.DOB != nil {
		if t, err := time.Parse("2006-01-02", *r.DOB); err == nil {
			m.DOB = &t
		}
	}
	return m
}

type UpdateParentRequest struct {
	ParentID *string `json:"parent_id" validate:"omitempty,min=2,max=50"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Type     *string `json:"type" validate:"omitempty,oneof=Mother Father Guardian"`

	NIC      *string `json:"nic" validate:"omitempty,max=50"`
	Job      *string `json:"job" validate:"omitempty,max=100"`
	DOB      *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	Contact  *string `json:"contact" validate:"omitempty,max=50"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`

	// nil = tidak disentuh; [] = lepaskan semua tautan siswa
	StudentIDs *[]uuid.UUID `json:"student_ids" validate:"omitempty,dive,required"`
}

func (r *UpdateParentRequest) ApplyToModel(m *model.ParentModel) {
	if r.ParentID != nil {
		m.ParentID = strings.TrimSpace(*r.ParentID)
	}
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.NIC != nil {
		m.NIC = r.NIC
	}
	if r.Job != nil {
		m.Job = r.Job
	}
	if r.DOB != nil {
		if t, err := time.Parse("2006-01-02", *r.DOB); err == nil {
			m.DOB = &t
		}
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Contact != nil {
		m.Contact = r.Contact
	}
	if r.ImageURL != nil {
		m.ImageURL = r.ImageURL
	}
}

/* ===================== RESPONSES ===================== */

type StudentLite struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StudentID *string   `json:"student_id,omitempty"`
}

type ParentResponse struct {
	ID       uuid.UUID `json:"id"`
	ParentID string    `json:"parent_id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`

	NIC      *string    `json:"nic,omitempty"`
	Job      *string    `json:"job,omitempty"`
	DOB      *time.Time `json:"dob,omitempty"`
	Address  *string    `json:"address,omitempty"`
	Contact  *string    `json:"contact,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`

	Students  []StudentLite `json:"students"`
	CreatedAt time.Time     `json:"created_at"`
}

func FromModel(m *model.ParentModel, students []StudentLite) ParentResponse {
	if students == nil {
		students = []StudentLite{}
	}
	return ParentResponse{
		ID:        m.ID,
		ParentID:  m.ParentID,
		Name:      m.Name,
		Type:      m.Type,
		NIC:       m.NIC,
		Job:       m.Job,
		DOB:       m.DOB,
		Address:   m.Address,
		Contact:   m.Contact,
		ImageURL:  m.ImageURL,
		Students:  students,
		CreatedAt: m.CreatedAt,
	}
}
