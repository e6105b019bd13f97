package model

import (
	"time"

	"campus_connect/internal/domain/roles"
)

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Not exposed
	Role           string `json:"role"`
	IsAdmin        bool   `json:"is_admin"`

	// Club membership is an admin-granted sub-role on top of the base role.
	IsClubMember bool    `json:"is_club_member"`
	ClubName     *string `json:"club_name,omitempty"`
	Position     *string `json:"position,omitempty"`

	Department string `json:"department,omitempty"`
	BatchYear  *int   `json:"batch_year,omitempty"`

	// Profile fields
	Company      string `json:"company,omitempty"`
	Location     string `json:"location,omitempty"`
	Bio          string `json:"bio,omitempty"`
	LinkedIn     string `json:"linked_in,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"` // Base64

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot projects the fields role resolution and permission calculation
// read. Build it fresh from the current record on every check.
func (u *User) Snapshot() roles.Snapshot {
	return roles.Snapshot{
		Email:        u.Email,
		StoredRole:   u.Role,
		IsAdmin:      u.IsAdmin,
		IsClubMember: u.IsClubMember,
	}
}
