package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
)

// Exists reports whether a user with the given username is present.
func (s *SQLiteStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE username = ?",
		username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts a new user into the database.
// Returns storage.ErrUserExists if the username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	exists, err := s.Exists(ctx, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return storage.ErrUserExists
	}

	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, logins, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.PasswordHash, user.Logins, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by username. Returns nil, nil when absent.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password_hash, logins, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.Logins, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// RecordLogin increments the user's login counter.
func (s *SQLiteStore) RecordLogin(ctx context.Context, username string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET logins = logins + 1 WHERE username = ?",
		username,
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if affected == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

// AppendLogin adds one audit row to the login log.
func (s *SQLiteStore) AppendLogin(ctx context.Context, username string, at time.Time) error {
	event := models.NewLoginEvent(username, at)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO login_log (username, timestamp) VALUES (?, ?)",
		event.Username, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append login event: %w", err)
	}
	return nil
}
