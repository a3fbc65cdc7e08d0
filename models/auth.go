package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by Register when the email is already registered
	ErrEmailTaken = errors.New("email already registered")
)

// RegisterRequest represents a request to register a user
type RegisterRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	Email         string     `json:"email" validate:"required,email"`
	Phone         string     `json:"phone" validate:"max=50"`
	Password      string     `json:"password" validate:"required,min=6"`
	PregnancyWeek int        `json:"pregnancyWeek" validate:"omitempty,min=1,max=40"`
	DueDate       *time.Time `json:"dueDate"`
	Language      string     `json:"language" validate:"omitempty,oneof=en sw"`
}

// LoginRequest represents a request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the profile fields to change; nil fields are kept
type UpdateProfileRequest struct {
	UserID        uuid.UUID  `json:"-"`
	Name          *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Phone         *string    `json:"phone" validate:"omitempty,max=50"`
	PregnancyWeek *int       `json:"pregnancyWeek" validate:"omitempty,min=1,max=40"`
	DueDate       *time.Time `json:"dueDate"`
	Language      *string    `json:"language" validate:"omitempty,oneof=en sw"`
}
