package roles

import "strings"

// Resolve derives the authoritative role for a user snapshot. Precedence,
// first match wins:
//
//  1. Admin flag or stored ADMIN role.
//  2. Club membership promotes a (stored or implied) STUDENT to
//     STUDENT_EDITOR. The flag deliberately does not relabel a stored
//     ALUMNI; club-flagged alumni keep their role and pick up club posting
//     rights through Permissions instead.
//  3. Any known explicit stored role, case-insensitively.
//  4. Email-based detection.
//  5. STUDENT as the safe default.
//
// Pure on the snapshot: re-resolve after every mutation, never cache.
func (r EmailRule) Resolve(u Snapshot) Role {
	if u.IsAdmin || strings.EqualFold(u.StoredRole, string(RoleAdmin)) {
		return RoleAdmin
	}

	stored, known := ParseRole(u.StoredRole)

	if u.IsClubMember && (!known || stored == RoleStudent) {
		return RoleStudentEditor
	}

	if known {
		return stored
	}

	if u.Email != "" {
		return r.DetectRole(u.Email)
	}

	return RoleStudent
}
