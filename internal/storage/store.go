// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
)

// UserStore defines the credential-store operations.
// This abstraction allows swapping storage backends (CSV flat files,
// SQLite, etc.) without changing the auth or web layers.
type UserStore interface {
	// Exists reports whether a user with the given username is present.
	Exists(ctx context.Context, username string) (bool, error)

	// CreateUser persists a new user record.
	// Returns ErrUserExists if the username is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by username.
	// Returns nil, nil when no such user exists.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// RecordLogin increments the user's login counter and persists it.
	RecordLogin(ctx context.Context, username string) error
}

// AuditLog defines the append-only login log. The planner only ever
// writes to it; there are no read operations.
type AuditLog interface {
	// AppendLogin adds one login event row for the given user.
	AppendLogin(ctx context.Context, username string, at time.Time) error
}

// Store combines the credential store and the audit log, which every
// backend implements together.
type Store interface {
	UserStore
	AuditLog

	// Close releases any resources held by the store.
	Close() error
}
