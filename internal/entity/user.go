package entity

import "time"

// User mirrors the `users` PostgreSQL table schema.
type User struct {
	ID           string
	Username     string
	DisplayName  *string
	PasswordHash string
	CreatedAt    time.Time
}

// SessionUser is the authenticated caller attached to a request.
type SessionUser struct {
	ID          string
	Username    string
	DisplayName *string
}
