package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered mother using the companion
type User struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PasswordHash  string     `json:"-"` // Never serialize password hash
	PregnancyWeek int        `json:"pregnancyWeek"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Language      string     `json:"language"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Profile defaults
const (
	DefaultPregnancyWeek = 8
	DefaultLanguage      = "en"
)
