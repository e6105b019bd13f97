package roles

import (
	"sort"
	"strings"
)

// Action is a fine-grained capability tag, distinct from Role so that one
// role can carry varying capabilities based on auxiliary flags.
type Action string

const (
	ActionViewContent Action = "VIEW_CONTENT"
	ActionInteract    Action = "INTERACT" // like, comment

	ActionCreateClubPost  Action = "CREATE_CLUB_POST"
	ActionManageClubPosts Action = "MANAGE_CLUB_POSTS"

	ActionCreateJob    Action = "CREATE_JOB"
	ActionPostResource Action = "POST_RESOURCE"

	ActionApproveClubMember Action = "APPROVE_CLUB_MEMBER"
	ActionManageUsers       Action = "MANAGE_USERS"
	ActionModerateContent   Action = "MODERATE_CONTENT"
	ActionAccessAdminPanel  Action = "ACCESS_ADMIN_PANEL"
)

// AllActions returns every defined action.
func AllActions() []Action {
	return []Action{
		ActionViewContent,
		ActionInteract,
		ActionCreateClubPost,
		ActionManageClubPosts,
		ActionCreateJob,
		ActionPostResource,
		ActionApproveClubMember,
		ActionManageUsers,
		ActionModerateContent,
		ActionAccessAdminPanel,
	}
}

// ActionSet is a set of allowed actions.
type ActionSet map[Action]struct{}

func NewActionSet(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

func (s ActionSet) Add(a Action) {
	s[a] = struct{}{}
}

// List returns the actions in sorted order for stable output.
func (s ActionSet) List() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Permissions maps a user snapshot to its allowed actions. The stored role
// is read directly (upper-cased) rather than through Resolve: the
// STUDENT_EDITOR synthesis never widens permissions by itself, only the
// club flag does. Deterministic and side-effect-free; recompute on every
// authorization check.
func Permissions(u Snapshot) ActionSet {
	set := NewActionSet(ActionViewContent, ActionInteract)

	stored := strings.ToUpper(u.StoredRole)

	if u.IsAdmin || stored == string(RoleAdmin) {
		return NewActionSet(AllActions()...)
	}

	if stored == string(RoleAlumni) {
		set.Add(ActionCreateJob)
		set.Add(ActionPostResource)
	}

	// The club flag grants club posting regardless of base role; this is
	// how a STUDENT ends up able to create event/club posts.
	if u.IsClubMember {
		set.Add(ActionCreateClubPost)
	}

	// Legacy seeded accounts store the literal STUDENT_EDITOR role without
	// the club flag. Exact match on the raw stored value; other stored
	// roles are normalized above, this one is not.
	if u.StoredRole == string(RoleStudentEditor) {
		set.Add(ActionCreateClubPost)
	}

	return set
}
