package domain

import "time"

// User is a registered account allowed to manage complaints.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
