package models

// AuthUser represents the user half of an authenticated session
type AuthUser struct {
	ID    int64  `json:"id" db:"user_id"`
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`
	Role  string `json:"role" db:"role"`
}

// Session is the authoritative record of who is logged in. It exists only
// between a successful login/registration and the next logout.
type Session struct {
	Token string   `json:"token" db:"token"`
	User  AuthUser `json:"user"`
}

// TokenResponse is the identity issuer's response to login and register calls
type TokenResponse struct {
	AccessToken string `json:"accesstoken"`
}

// LoginRequest carries credentials to the identity issuer
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries a new account request to the identity issuer
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
