package domain

// User represents a registered trader.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	AuditFields
}

// GetUserID returns the user ID.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername returns the username.
func (u *User) GetUsername() string { return u.Username }
