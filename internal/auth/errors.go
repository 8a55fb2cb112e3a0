package auth

import "errors"

var (
	// ErrEmptyCredentials is returned when username or password is missing.
	ErrEmptyCredentials = errors.New("auth: username and password are required")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("auth: username already exists")
	// ErrInvalidCredentials is returned on login with a bad username or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUserNotFound is returned when a username is unknown.
	ErrUserNotFound = errors.New("auth: user not found")
)
