package constants

import "fmt"

// Role yang dikenal aplikasi
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleVisitor = "visitor"
)

// Target audience khusus untuk announcement
const TargetAll = "all"

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "❌ Hanya teacher atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanUse  = "❌ Hanya student yang boleh menggunakan fitur %s."
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles   = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleVisitor}
	StaffRoles = []string{RoleAdmin, RoleTeacher}
	ViewRoles  = []string{RoleAdmin, RoleTeacher, RoleVisitor}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanUse, feature)
}
