package entity

import "time"

// ImportAttempt mirrors the `import_attempts` PostgreSQL table schema.
type ImportAttempt struct {
	ID             int64
	URL            string
	UserID         string
	Outcome        string // "success" or an import error kind
	FailureReason  string
	HTTPStatusCode int
	DurationMS     int
	AttemptedAt    time.Time
}
