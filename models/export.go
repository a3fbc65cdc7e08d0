package models

import (
	"time"

	"github.com/google/uuid"
)

// Export describes a snapshot of a user's sections written to object storage
type Export struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	StoragePath string    `json:"path"`
	Sections    []string  `json:"sections"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
