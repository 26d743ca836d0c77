package entity

type User struct {
	ID        string `json:"_id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user can reach the admin endpoints.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Registration struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is returned by POST /api/auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type APIKey struct {
	ID        string `json:"id,omitempty"`
	Service   string `json:"service"`
	Key       string `json:"key,omitempty"`
	Label     string `json:"label,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Profile is returned by GET /api/profile.
type Profile struct {
	User    User     `json:"user"`
	Wallets []Wallet `json:"wallets"`
	APIKeys []APIKey `json:"apiKeys"`
}

// ProfileUpdate is the body of PUT /api/profile. Password fields are only
// sent when the user changes the password.
type ProfileUpdate struct {
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}
