package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrInvalidToken       = errors.New("Could not validate credentials")
	ErrEmailExists        = errors.New("Email already registered")
	ErrUserNotFound       = errors.New("User not found")
)
