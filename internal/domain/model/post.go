package model

import "time"

type PostType string

const (
	PostGeneral    PostType = "GENERAL"
	PostClubUpdate PostType = "CLUB_UPDATE"
	PostJob        PostType = "JOB_POST"
	PostResource   PostType = "RESOURCE"
	PostEvent      PostType = "EVENT"
	PostExperience PostType = "EXPERIENCE"
)

// KnownPostType reports whether t is one of the defined post types.
func KnownPostType(t PostType) bool {
	switch t {
	case PostGeneral, PostClubUpdate, PostJob, PostResource, PostEvent, PostExperience:
		return true
	}
	return false
}

type Attachment struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	FileType string `json:"file_type"`
}

type ExternalLink struct {
	Label string `json:"label"` // e.g. "LeetCode", "Portfolio"
	URL   string `json:"url"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID      string   `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    PostType `json:"type"`

	Image         *string        `json:"image,omitempty"` // Base64 main image
	Images        []string       `json:"images,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	ExternalLinks []ExternalLink `json:"external_links,omitempty"`

	AuthorID string  `json:"author_id"`
	ClubName *string `json:"club_name,omitempty"`

	// Job-specific fields, null for other types
	CompanyName  *string `json:"company_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	ExternalLink *string `json:"external_link,omitempty"`
	Salary       *string `json:"salary,omitempty"`

	EventDate *time.Time `json:"event_date,omitempty"`

	LikeUserIDs []string  `json:"likes,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorName *string `json:"author_name,omitempty"` // For display
	AuthorRole *string `json:"author_role,omitempty"` // For display
}
