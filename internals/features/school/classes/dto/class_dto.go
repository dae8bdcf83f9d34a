// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/classes/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName         string    `json:"class_name" validate:"required,min=2,max=100"`
	ClassTeacherID    uuid.UUID `json:"class_teacher_id" validate:"required"`
	ClassRoomNumber   *string   `json:"class_room_number" validate:"omitempty,max=20"`
	ClassStudentCount *int      `json:"class_student_count" validate:"omitempty,min=0"`
}

func (r CreateClassRequest) ToModel() *model.ClassModel {
	m := &model.ClassModel{
		ClassName:       strings.TrimSpace(r.ClassName),
		ClassTeacherID:  r.ClassTeacherID,
		ClassRoomNumber: r.ClassRoomNumber,
	}
	if r.ClassStudentCount != nil {
		m.ClassStudentCount = *r.ClassStudentCount
	}
	return m
}

/* ===================== UPDATE (partial) ===================== */

type UpdateClassRequest struct {
	ClassName         *string    `json:"class_name" validate:"omitempty,min=2,max=100"`
	ClassTeacherID    *uuid.UUID `json:"class_teacher_id" validate:"omitempty"`
	ClassRoomNumber   *string    `json:"class_room_number" validate:"omitempty,max=20"`
	ClassStudentCount *int       `json:"class_student_count" validate:"omitempty,min=0"`
}

// ApplyToModel: terapkan hanya field yang dikirim
func (r *UpdateClassRequest) ApplyToModel(m *model.ClassModel) {
	if r.ClassName != nil {
		m.ClassName = strings.TrimSpace(*r.ClassName)
	}
	if r.ClassTeacherID != nil {
		m.ClassTeacherID = *r.ClassTeacherID
	}
	if r.ClassRoomNumber != nil {
		m.ClassRoomNumber = r.ClassRoomNumber
	}
	if r.ClassStudentCount != nil {
		m.ClassStudentCount = *r.ClassStudentCount
	}
}

/* ===================== RESPONSES ===================== */

type TeacherLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ClassResponse struct {
	ClassID           uuid.UUID    `json:"class_id"`
	ClassName         string       `json:"class_name"`
	ClassTeacher      *TeacherLite `json:"class_teacher,omitempty"`
	ClassRoomNumber   *string      `json:"class_room_number,omitempty"`
	ClassStudentCount int          `json:"class_student_count"`
	ClassCreatedAt    time.Time    `json:"class_created_at"`
}

func FromModel(m *model.ClassModel, teacher *TeacherLite) ClassResponse {
	return ClassResponse{
		ClassID:           m.ClassID,
		ClassName:         m.ClassName,
		ClassTeacher:      teacher,
		ClassRoomNumber:   m.ClassRoomNumber,
		ClassStudentCount: m.ClassStudentCount,
		ClassCreatedAt:    m.ClassCreatedAt,
	}
}
