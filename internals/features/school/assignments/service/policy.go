// file: internals/features/school/assignments/service/policy.go
//
// Aturan murni portal pengumpulan tugas. Tidak menyentuh DB maupun fiber,
// semua keputusan buka/tutup portal lewat fungsi di sini supaya controller
// dan test memakai logika yang sama persis.
package service

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/assignments/model"
)

// Status portal untuk pelaporan. Tutup manual menang atas kedaluwarsa.
const (
	PortalOpen          = "open"
	PortalClosedManual  = "closed_manual"
	PortalClosedExpired = "closed_expired"
)

// CanSubmit: portal harus terbuka DAN belum lewat deadline.
// Submit tepat di detik deadline masih diterima.
func CanSubmit(a *model.AssignmentModel, now time.Time) bool {
	return a.AssignmentIsPortalOpen && !now.After(a.AssignmentDeadline)
}

// PortalState memetakan kondisi portal ke salah satu dari tiga status.
func PortalState(a *model.AssignmentModel, now time.Time) string {
	if !a.AssignmentIsPortalOpen {
		return PortalClosedManual
	}
	if now.After(a.AssignmentDeadline) {
		return PortalClosedExpired
	}
	return PortalOpen
}

// OwnsSubmission: satu-satunya jalur perbandingan kepemilikan submission.
func OwnsSubmission(sub *model.AssignmentSubmissionModel, studentID uuid.UUID) bool {
	return sub.SubmissionStudentID == studentID
}

// TimeRemaining: sisa waktu sampai deadline, nol bila sudah lewat.
// Hanya untuk tampilan; keputusan submit tetap lewat CanSubmit.
func TimeRemaining(deadline, now time.Time) time.Duration {
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
