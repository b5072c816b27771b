package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrConfigNotFound     = errors.New("game configuration not found")
	ErrInvalidConfig      = errors.New("invalid game configuration")
)
