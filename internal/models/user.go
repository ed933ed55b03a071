package models

import "time"

// TimestampLayout is the persisted format for audit-log timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// User represents a registered staff account.
type User struct {
	// Username is the unique identifier for the account.
	Username string

	// PasswordHash is the bcrypt hash of the account password.
	// The CSV store persists it under the legacy "password" column.
	PasswordHash string

	// Logins counts successful logins for this account.
	Logins int

	// CreatedAt is the Unix timestamp when the account was created.
	// The CSV backend does not persist it; the SQLite backend does.
	CreatedAt int64
}

// LoginEvent is one row of the append-only login audit log.
type LoginEvent struct {
	Username  string
	Timestamp string // TimestampLayout
}

// NewLoginEvent builds an audit row for a login at the given time.
func NewLoginEvent(username string, at time.Time) LoginEvent {
	return LoginEvent{
		Username:  username,
		Timestamp: at.Format(TimestampLayout),
	}
}
