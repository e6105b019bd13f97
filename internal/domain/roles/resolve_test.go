package roles

import "testing"

func TestResolve_Precedence(t *testing.T) {
	fixNow(t, 2026)

	tests := []struct {
		name string
		u    Snapshot
		want Role
	}{
		// Admin always wins, whatever else is set.
		{"admin_flag", Snapshot{IsAdmin: true, StoredRole: "STUDENT", IsClubMember: true, Email: "arjun.19cse@kongu.edu"}, RoleAdmin},
		{"admin_stored_role", Snapshot{StoredRole: "ADMIN", IsClubMember: true}, RoleAdmin},
		{"admin_stored_role_lowercase", Snapshot{StoredRole: "admin"}, RoleAdmin},

		// Club membership promotes students to editor.
		{"club_student", Snapshot{StoredRole: "STUDENT", IsClubMember: true}, RoleStudentEditor},
		{"club_no_stored_role", Snapshot{IsClubMember: true, Email: "priya.24ece@kongu.edu"}, RoleStudentEditor},
		// A club-flagged alumni keeps the alumni role; the flag only
		// widens permissions.
		{"club_alumni", Snapshot{StoredRole: "ALUMNI", IsClubMember: true}, RoleAlumni},

		// Explicit stored roles, case-insensitive.
		{"stored_alumni", Snapshot{StoredRole: "alumni"}, RoleAlumni},
		{"stored_student", Snapshot{StoredRole: "Student"}, RoleStudent},
		{"stored_legacy_editor", Snapshot{StoredRole: "STUDENT_EDITOR"}, RoleStudentEditor},
		{"stored_legacy_editor_with_flag", Snapshot{StoredRole: "STUDENT_EDITOR", IsClubMember: true}, RoleStudentEditor},

		// Email inference when the stored role is absent or unknown.
		{"email_student", Snapshot{Email: "priya.24ece@kongu.edu"}, RoleStudent},
		{"email_alumni", Snapshot{Email: "arjun.19cse@kongu.edu"}, RoleAlumni},
		{"unknown_stored_falls_to_email", Snapshot{StoredRole: "MODERATOR", Email: "arjun.19cse@kongu.edu"}, RoleAlumni},

		// Safe default.
		{"empty_snapshot", Snapshot{}, RoleStudent},
		{"unknown_stored_no_email", Snapshot{StoredRole: "MODERATOR"}, RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := konguRule.Resolve(tt.u); got != tt.want {
				t.Fatalf("Resolve(%+v) = %s, want %s", tt.u, got, tt.want)
			}
		})
	}
}

func TestResolve_PureOnSnapshot(t *testing.T) {
	fixNow(t, 2026)

	u := Snapshot{StoredRole: "STUDENT"}
	if got := konguRule.Resolve(u); got != RoleStudent {
		t.Fatalf("before promotion: %s", got)
	}
	u.IsClubMember = true
	if got := konguRule.Resolve(u); got != RoleStudentEditor {
		t.Fatalf("after promotion: %s", got)
	}
	u.IsClubMember = false
	if got := konguRule.Resolve(u); got != RoleStudent {
		t.Fatalf("after demotion: %s", got)
	}
}

func TestHasRole(t *testing.T) {
	if !HasRole(RoleAlumni, RoleAlumni, RoleAdmin) {
		t.Fatal("alumni should match [alumni, admin]")
	}
	if HasRole(RoleStudent, RoleAlumni, RoleAdmin) {
		t.Fatal("student should not match [alumni, admin]")
	}
	if !HasRole(Role("admin"), RoleAdmin) {
		t.Fatal("matching must be case-insensitive")
	}
	if HasRole(RoleStudent) {
		t.Fatal("empty allow list matches nothing")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" alumni "); !ok || r != RoleAlumni {
		t.Fatalf("ParseRole(alumni) = %s, %v", r, ok)
	}
	if _, ok := ParseRole("MODERATOR"); ok {
		t.Fatal("unknown role must not parse")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatal("empty role must not parse")
	}
}
