package service

import (
	"errors"

	"uzazi-salama-backend/models"
)

var (
	// ErrUserNotFound is returned when the addressed user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthorized is returned when a caller addresses another user's data
	ErrUnauthorized = errors.New("not authorized for this user")

	ErrInvalidCredentials = models.ErrInvalidCredentials
	ErrEmailTaken         = models.ErrEmailTaken

	// ErrInvalidToken is returned for missing, malformed or expired bearer tokens
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidInput is returned when a request fails field validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrExportNotFound is returned when an export path does not exist or is not owned by the caller
	ErrExportNotFound = errors.New("export not found")
)
