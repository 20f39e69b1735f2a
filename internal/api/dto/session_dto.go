package dto

// LoginRequest carries the credentials from the portal's login form.
// Fiber's body parser accepts it as JSON or form-encoded.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SessionResponse is the profile payload returned by /api/me.
type SessionResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Area     string `json:"area"`
	Role     string `json:"role"`
}

// LoginResponse echoes the profile plus the token, so clients whose
// browsers block cross-site cookies can fall back to the bearer header.
type LoginResponse struct {
	SessionResponse
	Token string `json:"token"`
}
