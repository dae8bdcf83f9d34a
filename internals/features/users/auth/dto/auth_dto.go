// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student visitor"`

	// Student
	StudentID *string    `json:"student_id" validate:"omitempty,max=50"`
	ClassID   *uuid.UUID `json:"class_id" validate:"omitempty"`

	// Teacher
	TeacherID      *string    `json:"teacher_id" validate:"omitempty,max=50"`
	SubjectID      *uuid.UUID `json:"subject_id" validate:"omitempty"`
	RegisterDate   *string    `json:"register_date" validate:"omitempty,datetime=2006-01-02"`
	Qualifications []string   `json:"qualifications" validate:"omitempty"`
	Experience     []string   `json:"experience" validate:"omitempty"`

	// Visitor
	VisitorID  *string `json:"visitor_id" validate:"omitempty,max=50"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	NIC        *string `json:"nic" validate:"omitempty,max=50"`

	// Common
	Gender  *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Image   *string `json:"image_url" validate:"omitempty,url"`
	Contact *string `json:"contact" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty"`
	DOB     *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

// ToModel membangun user baru; kolom spesifik role hanya diisi sesuai role-nya
// (field role lain yang ikut terkirim diabaikan, meniru perilaku form lama).
func (r RegisterRequest) ToModel(hashedPassword string) *userModel.UserModel {
	role := strings.ToLower(strings.TrimSpace(r.Role))
	m := &userModel.UserModel{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
		Gender:   r.Gender,
		ImageURL: r.Image,
		Contact:  r.Contact,
		Address:  r.Address,
	}
	if r.DOB != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.DOB)); err == nil {
			m.DOB = &d
		}
	}

	switch role {
	case "student":
		m.StudentID = r.StudentID
		m.ClassID = r.ClassID
	case "teacher":
		m.TeacherID = r.TeacherID
		m.SubjectID = r.SubjectID
		if r.RegisterDate != nil {
			if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.RegisterDate)); err == nil {
				m.RegisterDate = &d
			}
		}
		if len(r.Qualifications) > 0 {
			m.Qualifications = datatypes.NewJSONSlice(r.Qualifications)
		}
		if len(r.Experience) > 0 {
			m.Experience = datatypes.NewJSONSlice(r.Experience)
		}
	case "visitor":
		m.VisitorID = r.VisitorID
		m.Department = r.Department
		m.Position = r.Position
		m.NIC = r.NIC
	}
	return m
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}
