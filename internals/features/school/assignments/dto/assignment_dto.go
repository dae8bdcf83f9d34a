// file: internals/features/school/assignments/dto/assignment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/assignments/model"
)

/* ===================== REQUESTS ===================== */

type CreateAssignmentRequest struct {
	AssignmentTitle       string     `json:"assignment_title" form:"assignment_title" validate:"required,min=2,max=200"`
	AssignmentDescription *string    `json:"assignment_description" form:"assignment_description" validate:"omitempty"`
	AssignmentClassID     uuid.UUID  `json:"assignment_class_id" form:"assignment_class_id" validate:"required"`
	AssignmentSubject     string     `json:"assignment_subject" form:"assignment_subject" validate:"required,min=2,max=100"`
	AssignmentFileURL     *string    `json:"assignment_file_url" form:"assignment_file_url" validate:"omitempty,url"`
	AssignmentDeadline    time.Time  `json:"assignment_deadline" form:"assignment_deadline" validate:"required"`
}

func (r CreateAssignmentRequest) ToModel(teacherID uuid.UUID) *model.AssignmentModel {
	return &model.AssignmentModel{
		AssignmentTitle:        strings.TrimSpace(r.AssignmentTitle),
		AssignmentDescription:  r.AssignmentDescription,
		AssignmentClassID:      r.AssignmentClassID,
		AssignmentSubject:      strings.TrimSpace(r.AssignmentSubject),
		AssignmentTeacherID:    teacherID,
		AssignmentFileURL:      r.AssignmentFileURL,
		AssignmentDeadline:     r.AssignmentDeadline,
		AssignmentIsPortalOpen: true,
	}
}

// UpdateAssignmentRequest: semua pointer, hanya field yang dikirim yang berubah.
// assignment_teacher_id sengaja tidak ada di sini (immutable).
type UpdateAssignmentRequest struct {
	AssignmentTitle       *string    `json:"assignment_title" form:"assignment_title" validate:"omitempty,min=2,max=200"`
	AssignmentDescription *string    `json:"assignment_description" form:"assignment_description" validate:"omitempty"`
	AssignmentClassID     *uuid.UUID `json:"assignment_class_id" form:"assignment_class_id" validate:"omitempty"`
	AssignmentSubject     *string    `json:"assignment_subject" form:"assignment_subject" validate:"omitempty,min=2,max=100"`
	AssignmentFileURL     *string    `json:"assignment_file_url" form:"assignment_file_url" validate:"omitempty,url"`
	AssignmentDeadline    *time.Time `json:"assignment_deadline" form:"assignment_deadline" validate:"omitempty"`
}

// ApplyToModel: file_url lama dipertahankan kecuali dikirim eksplisit.
// Memperpanjang deadline TIDAK membuka portal yang sudah ditutup manual.
func (r *UpdateAssignmentRequest) ApplyToModel(m *model.AssignmentModel) {
	if r.AssignmentTitle != nil {
		m.AssignmentTitle = strings.TrimSpace(*r.AssignmentTitle)
	}
	if r.AssignmentDescription != nil {
		m.AssignmentDescription = r.AssignmentDescription
	}
	if r.AssignmentClassID != nil {
		m.AssignmentClassID = *r.AssignmentClassID
	}
	if r.AssignmentSubject != nil {
		m.AssignmentSubject = strings.TrimSpace(*r.AssignmentSubject)
	}
	if r.AssignmentFileURL != nil {
		m.AssignmentFileURL = r.AssignmentFileURL
	}
	if r.AssignmentDeadline != nil {
		m.AssignmentDeadline = *r.AssignmentDeadline
	}
}

type SubmitAssignmentRequest struct {
	SubmissionFileURL *string `json:"submission_file_url" form:"submission_file_url" validate:"omitempty,url"`
	SubmissionRemarks *string `json:"submission_remarks" form:"submission_remarks" validate:"omitempty,max=2000"`
}

/* ===================== RESPONSES ===================== */

type ClassLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TeacherLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type StudentLite struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StudentID *string   `json:"student_id,omitempty"`
}

type SubmissionResponse struct {
	SubmissionID uuid.UUID    `json:"submission_id"`
	Student      *StudentLite `json:"student,omitempty"`
	FileURL      string       `json:"file_url"`
	Remarks      *string      `json:"remarks,omitempty"`
	SubmittedAt  time.Time    `json:"submitted_at"`
}

type AssignmentResponse struct {
	AssignmentID          uuid.UUID    `json:"assignment_id"`
	AssignmentTitle       string       `json:"assignment_title"`
	AssignmentDescription *string      `json:"assignment_description,omitempty"`
	AssignmentClass       *ClassLite   `json:"assignment_class,omitempty"`
	AssignmentSubject     string       `json:"assignment_subject"`
	AssignmentTeacher     *TeacherLite `json:"assignment_teacher,omitempty"`
	AssignmentFileURL     *string      `json:"assignment_file_url,omitempty"`
	AssignmentDeadline    time.Time    `json:"assignment_deadline"`
	AssignmentIsPortalOpen bool        `json:"assignment_is_portal_open"`
	PortalState           string       `json:"portal_state"`

	Submissions []SubmissionResponse `json:"submissions"`

	AssignmentCreatedAt time.Time `json:"assignment_created_at"`
}

func FromModel(
	m *model.AssignmentModel,
	class *ClassLite,
	teacher *TeacherLite,
	portalState string,
	submissions []SubmissionResponse,
) AssignmentResponse {
	if submissions == nil {
		submissions = []SubmissionResponse{}
	}
	return AssignmentResponse{
		AssignmentID:           m.AssignmentID,
		AssignmentTitle:        m.AssignmentTitle,
		AssignmentDescription:  m.AssignmentDescription,
		AssignmentClass:        class,
		AssignmentSubject:      m.AssignmentSubject,
		AssignmentTeacher:      teacher,
		AssignmentFileURL:      m.AssignmentFileURL,
		AssignmentDeadline:     m.AssignmentDeadline,
		AssignmentIsPortalOpen: m.AssignmentIsPortalOpen,
		PortalState:            portalState,
		Submissions:            submissions,
		AssignmentCreatedAt:    m.AssignmentCreatedAt,
	}
}
