// file: internals/features/school/announcements/dto/announcement_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/school/announcements/model"
)

/* ===================== REQUESTS ===================== */

type CreateAnnouncementRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Content     string   `json:"content" validate:"required"`
	TargetRoles []string `json:"target_roles" validate:"omitempty,dive,oneof=all admin teacher student visitor"`
}

func (r CreateAnnouncementRequest) ToModel(createdBy uuid.UUID) *model.AnnouncementModel {
	targets := normalizeTargets(r.TargetRoles)
	return &model.AnnouncementModel{
		Title:       strings.TrimSpace(r.Title),
		Content:     r.Content,
		TargetRoles: targets,
		CreatedBy:   createdBy,
	}
}

// normalizeTargets: kosong → {all}; duplikat dibuang.
func normalizeTargets(in []string) pq.StringArray {
	if len(in) == 0 {
		return pq.StringArray{constants.TargetAll}
	}
	seen := make(map[string]bool, len(in))
	out := make(pq.StringArray, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return pq.StringArray{constants.TargetAll}
	}
	return out
}

type UpdateAnnouncementRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=2,max=200"`
	Content     *string   `json:"content" validate:"omitempty"`
	TargetRoles *[]string `json:"target_roles" validate:"omitempty,dive,oneof=all admin teacher student visitor"`
}

func (r *UpdateAnnouncementRequest) ApplyToModel(m *model.AnnouncementModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m.Content = *r.Content
	}
	if r.TargetRoles != nil {
		m.TargetRoles = normalizeTargets(*r.TargetRoles)
	}
}

/* ===================== RESPONSES ===================== */

type AuthorLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type AnnouncementResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	TargetRoles []string    `json:"target_roles"`
	CreatedBy   *AuthorLite `json:"created_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func FromModel(m *model.AnnouncementModel, author *AuthorLite) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		TargetRoles: []string(m.TargetRoles),
		CreatedBy:   author,
		CreatedAt:   m.CreatedAt,
	}
}
