package domain

// Role enumerates portal access levels.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AreaAll grants visibility of every geographic area.
const AreaAll = "ALL"

// Profile is the committee-member identity embedded in session tokens.
// It is read-only: sourced from the directory at login and never
// mutated afterwards.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Area     string `json:"area"`
	Role     Role   `json:"role"`
}

// SeesArea reports whether the profile may view content for the given
// geographic area.
func (p Profile) SeesArea(area string) bool {
	return p.Area == AreaAll || p.Area == area
}

// IsAdmin reports whether the profile carries the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
