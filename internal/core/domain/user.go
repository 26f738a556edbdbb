package domain

// User models the authenticated account as reported by the backend.
// The client only relies on ID; the remaining fields are display data.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Credentials are submitted by the login form. The backend accepts either
// a username or an email address alongside the password.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Registration carries the fields of the registration form.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
