package storage

import "errors"

var (
	// ErrUserExists is returned by CreateUser when the username is taken.
	ErrUserExists = errors.New("username already exists")

	// ErrUserNotFound is returned by mutating operations that target a
	// user that is not in the store.
	ErrUserNotFound = errors.New("user not found")
)
