package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	model "sekolahku_backend/internals/features/school/assignments/model"
)

func newAssignment(open bool, deadline time.Time) *model.AssignmentModel {
	return &model.AssignmentModel{
		AssignmentID:           uuid.New(),
		AssignmentTitle:        "Latihan Aljabar",
		AssignmentDeadline:     deadline,
		AssignmentIsPortalOpen: open,
	}
}

func TestCanSubmit_BeforeDeadline(t *testing.T) {
	now := time.Now()
	a := newAssignment(true, now.Add(24*time.Hour))
	assert.True(t, CanSubmit(a, now))
}

func TestCanSubmit_ExactDeadlineInstantAccepted(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	a := newAssignment(true, deadline)
	assert.True(t, CanSubmit(a, deadline), "submit tepat di deadline masih sah")
	assert.False(t, CanSubmit(a, deadline.Add(time.Nanosecond)))
}

func TestCanSubmit_PortalClosedManually(t *testing.T) {
	now := time.Now()
	a := newAssignment(false, now.Add(24*time.Hour))
	assert.False(t, CanSubmit(a, now), "portal tutup manual menolak submit meski deadline masih jauh")
}

func TestCanSubmit_Expired(t *testing.T) {
	now := time.Now()
	a := newAssignment(true, now.Add(-time.Minute))
	assert.False(t, CanSubmit(a, now))
}

func TestPortalState(t *testing.T) {
	now := time.Now()

	assert.Equal(t, PortalOpen, PortalState(newAssignment(true, now.Add(time.Hour)), now))
	assert.Equal(t, PortalClosedExpired, PortalState(newAssignment(true, now.Add(-time.Hour)), now))
	assert.Equal(t, PortalClosedManual, PortalState(newAssignment(false, now.Add(time.Hour)), now))

	// tutup manual menang atas kedaluwarsa untuk pelaporan
	assert.Equal(t, PortalClosedManual, PortalState(newAssignment(false, now.Add(-time.Hour)), now))
}

func TestOwnsSubmission(t *testing.T) {
	student := uuid.New()
	sub := &model.AssignmentSubmissionModel{SubmissionStudentID: student}

	assert.True(t, OwnsSubmission(sub, student))
	assert.False(t, OwnsSubmission(sub, uuid.New()))
}

func TestTimeRemaining(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 2*time.Hour, TimeRemaining(now.Add(2*time.Hour), now))
	assert.Equal(t, time.Duration(0), TimeRemaining(now.Add(-time.Second), now), "sudah lewat = nol, bukan negatif")
	assert.Equal(t, time.Duration(0), TimeRemaining(now, now))
}
