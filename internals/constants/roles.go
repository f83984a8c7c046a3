package constants

import "fmt"

// Role sebagai enumerasi tertutup — bukan string bebas yang dicek ulang
// di tiap handler.
const (
	RoleStudent    = "student"
	RolePreceptor  = "preceptor"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// Action yang dikenal sistem, dipetakan lewat tabel kapabilitas.
const (
	ActionClockSelf      = "clock:self"       // clock-in/out atas rotasi sendiri
	ActionViewOwnRecords = "records:view_own" // lihat time-record milik sendiri
	ActionViewAllRecords = "records:view_all" // lihat time-record siapa pun
	ActionApproveRecords = "records:approve"  // approve/reject time-record
	ActionDeleteRecords  = "records:delete"   // hapus time-record siapa pun
	ActionManageRotation = "rotations:manage" // CRUD rotasi
	ActionViewAuditLog   = "audit:view"       // baca audit log
)

// capabilities: role → aksi yang diizinkan. Dievaluasi sekali per request
// lewat Can(), bukan slice-includes tersebar di handler.
var capabilities = map[string]map[string]bool{
	RoleStudent: {
		ActionClockSelf:      true,
		ActionViewOwnRecords: true,
	},
	RolePreceptor: {
		ActionViewAllRecords: true,
		ActionApproveRecords: true,
	},
	RoleSupervisor: {
		ActionViewAllRecords: true,
		ActionApproveRecords: true,
	},
	RoleAdmin: {
		ActionViewAllRecords: true,
		ActionApproveRecords: true,
		ActionDeleteRecords:  true,
		ActionManageRotation: true,
		ActionViewAuditLog:   true,
	},
}

func Can(role, action string) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}

func IsKnownRole(role string) bool {
	_, ok := capabilities[role]
	return ok
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RolePreceptor,
		RoleSupervisor,
		RoleAdmin,
	}

	ApproverRoles = []string{
		RolePreceptor,
		RoleSupervisor,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// Template pesan error role
const (
	ErrOnlyStudentsCanAccess  = "❌ Hanya student yang boleh mengakses fitur %s."
	ErrOnlyApproversCanAccess = "❌ Hanya preceptor, supervisor, atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorApprover(feature string) string {
	return fmt.Sprintf(ErrOnlyApproversCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
