package entities

import "time"

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID           uint
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
