package models

// User is the stored form of a user.
type User struct {
	UserID           string    `json:"user_id" db:"user_id"`
	Username         string    `json:"username" db:"username"`
	PasswordHash     string    `json:"hashed_password" db:"password_hash"`
	RegistrationDate Timestamp `json:"registration_date" db:"registered_at"`
}
