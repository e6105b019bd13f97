package roles

import "strings"

// Role is the single authoritative role label used for UI and route gating.
// Keeping it a closed enum (rather than free-form strings) makes invalid
// role states unrepresentable outside of legacy stored values, which are
// normalized on the way in.
type Role string

const (
	RoleStudent       Role = "STUDENT"
	RoleStudentEditor Role = "STUDENT_EDITOR"
	RoleAlumni        Role = "ALUMNI"
	RoleAdmin         Role = "ADMIN"
)

// ParseRole normalizes a stored role string to a known Role. The second
// return is false for unknown or empty values.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleStudentEditor:
		return RoleStudentEditor, true
	case RoleAlumni:
		return RoleAlumni, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Snapshot is the slice of a user record the role and permission logic
// reads. Callers must build a fresh Snapshot after any mutation to
// StoredRole or IsClubMember; nothing here is cached.
type Snapshot struct {
	Email        string
	StoredRole   string
	IsAdmin      bool
	IsClubMember bool
}

// HasRole reports whether resolved matches any of the allowed roles,
// case-insensitively. This is the coarse route-gating check, kept separate
// from the fine-grained action permissions.
func HasRole(resolved Role, allowed ...Role) bool {
	for _, a := range allowed {
		if strings.EqualFold(string(resolved), string(a)) {
			return true
		}
	}
	return false
}
