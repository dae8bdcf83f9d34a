// file: internals/features/school/subjects/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/subjects/model"
)

/* ===================== REQUESTS ===================== */

type CreateSubjectRequest struct {
	SubjectName        string     `json:"subject_name" validate:"required,min=2,max=100"`
	SubjectCode        string     `json:"subject_code" validate:"required,min=2,max=20"`
	SubjectTeacherID   *uuid.UUID `json:"subject_teacher_id" validate:"omitempty"`
	SubjectDescription *string    `json:"subject_description" validate:"omitempty,max=2000"`
}

func (r CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{
		SubjectName:        strings.TrimSpace(r.SubjectName),
		SubjectCode:        strings.ToUpper(strings.TrimSpace(r.SubjectCode)),
		SubjectTeacherID:   r.SubjectTeacherID,
		SubjectDescription: r.SubjectDescription,
	}
}

type UpdateSubjectRequest struct {
	SubjectName        *string    `json:"subject_name" validate:"omitempty,min=2,max=100"`
	SubjectCode        *string    `json:"subject_code" validate:"omitempty,min=2,max=20"`
	SubjectTeacherID   *uuid.UUID `json:"subject_teacher_id" validate:"omitempty"`
	SubjectDescription *string    `json:"subject_description" validate:"omitempty,max=2000"`
}

// ApplyToModel: hanya field yang dikirim yang diubah.
// Catatan: SubjectTeacherID yang dikirim (termasuk null eksplisit lewat uuid.Nil)
// tetap dianggap perubahan pengampu.
func (r *UpdateSubjectRequest) ApplyToModel(m *model.SubjectModel) {
	if r.SubjectName != nil {
		m.SubjectName = strings.TrimSpace(*r.SubjectName)
	}
	if r.SubjectCode != nil {
		m.SubjectCode = strings.ToUpper(strings.TrimSpace(*r.SubjectCode))
	}
	if r.SubjectTeacherID != nil {
		if *r.SubjectTeacherID == uuid.Nil {
			m.SubjectTeacherID = nil
		} else {
			m.SubjectTeacherID = r.SubjectTeacherID
		}
	}
	if r.SubjectDescription != nil {
		m.SubjectDescription = r.SubjectDescription
	}
}

/* ===================== RESPONSES ===================== */

type TeacherLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SubjectResponse struct {
	SubjectID          uuid.UUID    `json:"subject_id"`
	SubjectName        string       `json:"subject_name"`
	SubjectCode        string       `json:"subject_code"`
	SubjectTeacher     *TeacherLite `json:"subject_teacher,omitempty"`
	SubjectDescription *string      `json:"subject_description,omitempty"`
	SubjectCreatedAt   time.Time    `json:"subject_created_at"`
}

func FromModel(m *model.SubjectModel, teacher *TeacherLite) SubjectResponse {
	return SubjectResponse{
		SubjectID:          m.SubjectID,
		SubjectName:        m.SubjectName,
		SubjectCode:        m.SubjectCode,
		SubjectTeacher:     teacher,
		SubjectDescription: m.SubjectDescription,
		SubjectCreatedAt:   m.SubjectCreatedAt,
	}
}
