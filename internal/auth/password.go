package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
	ErrMissingFields      = errors.New("username and password are required")
)

// PasswordAuthenticator implements password-based signup and login using
// bcrypt over a storage.UserStore. Passwords are never persisted in clear;
// the store's password column holds the bcrypt hash.
type PasswordAuthenticator struct {
	store storage.UserStore
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(store storage.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 4 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
// Registration does not log the user in; they must authenticate explicitly.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if err := a.ValidateCredential(password); err != nil {
		return nil, err
	}

	exists, err := a.store.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if
// valid. Unknown usernames and wrong passwords are indistinguishable.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.store.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
