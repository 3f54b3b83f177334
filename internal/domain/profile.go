package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserProfile mirrors a row of the backend "profiles" table. Its id is the
// auth identity's id; the row is created at sign-up when absent.
type UserProfile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
