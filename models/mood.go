package models

import (
	"time"

	"github.com/google/uuid"
)

// MoodLabel represents one of the fixed mood values a user can log
type MoodLabel string

const (
	MoodHappy   MoodLabel = "happy"
	MoodCalm    MoodLabel = "calm"
	MoodSad     MoodLabel = "sad"
	MoodAngry   MoodLabel = "angry"
	MoodNeutral MoodLabel = "neutral"
)

// ValidMoods lists every accepted mood label, in display order
var ValidMoods = []MoodLabel{MoodHappy, MoodCalm, MoodSad, MoodAngry, MoodNeutral}

// IsValid reports whether the label is in the closed mood set
func (m MoodLabel) IsValid() bool {
	switch m {
	case MoodHappy, MoodCalm, MoodSad, MoodAngry, MoodNeutral:
		return true
	}
	return false
}

// Mood represents a single mood journal entry. Entries are append-only:
// a user may log any number of entries per hour and none is ever updated.
type Mood struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Mood      MoodLabel `json:"mood"`
	Notes     string    `json:"notes"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
