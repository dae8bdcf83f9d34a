// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "sekolahku_backend/internals/features/users/user/model"
)

/* ===================== LITE REFS ===================== */

type ClassLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SubjectLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

/* ===================== UPDATE (partial) ===================== */

// Field yang tidak dikirim tidak diubah (pointer = opsional).
type UpdateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Contact *string `json:"contact" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty"`
	Gender  *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Image   *string `json:"image_url" validate:"omitempty,url"`
	DOB     *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`

	StudentID *string    `json:"student_id" validate:"omitempty,max=50"`
	ClassID   *uuid.UUID `json:"class_id" validate:"omitempty"`

	TeacherID      *string    `json:"teacher_id" validate:"omitempty,max=50"`
	SubjectID      *uuid.UUID `json:"subject_id" validate:"omitempty"`
	RegisterDate   *string    `json:"register_date" validate:"omitempty,datetime=2006-01-02"`
	Qualifications *[]string  `json:"qualifications" validate:"omitempty"`
	Experience     *[]string  `json:"experience" validate:"omitempty"`

	VisitorID  *string `json:"visitor_id" validate:"omitempty,max=50"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	NIC        *string `json:"nic" validate:"omitempty,max=50"`
}

// ApplyToModel: terapkan hanya field yang dikirim
func (r *UpdateUserRequest) ApplyToModel(m *model.UserModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Contact != nil {
		m.Contact = r.Contact
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.Image != nil {
		m.ImageURL = r.Image
	}
	if r.DOB != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.DOB)); err == nil {
			m.DOB = &d
		}
	}
	if r.StudentID != nil {
		m.StudentID = r.StudentID
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
	if r.TeacherID != nil {
		m.TeacherID = r.TeacherID
	}
	if r.SubjectID != nil {
		m.SubjectID = r.SubjectID
	}
	if r.RegisterDate != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.RegisterDate)); err == nil {
			m.RegisterDate = &d
		}
	}
	if r.Qualifications != nil {
		m.Qualifications = datatypes.NewJSONSlice(*r.Qualifications)
	}
	if r.Experience != nil {
		m.Experience = datatypes.NewJSONSlice(*r.Experience)
	}
	if r.VisitorID != nil {
		m.VisitorID = r.VisitorID
	}
	if r.Department != nil {
		m.Department = r.Department
	}
	if r.Position != nil {
		m.Position = r.Position
	}
	if r.NIC != nil {
		m.NIC = r.NIC
	}
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`

	StudentID *string    `json:"student_id,omitempty"`
	Class     *ClassLite `json:"class,omitempty"`

	TeacherID      *string      `json:"teacher_id,omitempty"`
	Subject        *SubjectLite `json:"subject,omitempty"`
	RegisterDate   *time.Time   `json:"register_date,omitempty"`
	Qualifications []string     `json:"qualifications,omitempty"`
	Experience     []string     `json:"experience,omitempty"`

	VisitorID  *string `json:"visitor_id,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	NIC        *string `json:"nic,omitempty"`

	Gender   *string    `json:"gender,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`
	Contact  *string    `json:"contact,omitempty"`
	Address  *string    `json:"address,omitempty"`
	DOB      *time.Time `json:"dob,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FromModel: class & subject dilengkapi controller lewat lookup terpisah
func FromModel(u *model.UserModel, class *ClassLite, subject *SubjectLite) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		StudentID:      u.StudentID,
		Class:          class,
		TeacherID:      u.TeacherID,
		Subject:        subject,
		RegisterDate:   u.RegisterDate,
		Qualifications: u.Qualifications,
		Experience:     u.Experience,
		VisitorID:      u.VisitorID,
		Department:     u.Department,
		Position:       u.Position,
		NIC:            u.NIC,
		Gender:         u.Gender,
		ImageURL:       u.ImageURL,
		Contact:        u.Contact,
		Address:        u.Address,
		DOB:            u.DOB,
		CreatedAt:      u.CreatedAt,
	}
}
