package models

import (
	"time"

	"github.com/google/uuid"
)

// MoodExport records a generated CSV export of a user's mood history
type MoodExport struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StoragePath string    `json:"-"`
	EntryCount  int       `json:"entry_count"`
	CreatedAt   time.Time `json:"created_at"`
}
