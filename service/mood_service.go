package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"moodtracker-backend/models"
	"moodtracker-backend/repository"

	"github.com/google/uuid"
)

// ErrInvalidMood is returned when a mood label is outside the closed set
var ErrInvalidMood = errors.New("mood must be one of: happy, calm, sad, angry, neutral")

// Default range window and cap for mood queries: the trailing 7 days, one
// entry per hour at most in the common case.
const (
	defaultRangeDays  = 7
	defaultRangeLimit = 168
)

// MoodStore is the persistence contract for mood entries
type MoodStore interface {
	Create(ctx context.Context, mood *models.Mood) error
	GetLatest(ctx context.Context, userID uuid.UUID) (*models.Mood, error)
	GetRange(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]*models.Mood, error)
}

// MoodService handles the mood journal
type MoodService struct {
	store MoodStore
	now   func() time.Time
}

// NewMoodService creates a new mood service
func NewMoodService(store MoodStore) *MoodService {
	return &MoodService{store: store, now: time.Now}
}

// LogMood validates the label and appends a new entry timestamped now.
// A new record is always inserted; logging twice in the same hour yields
// two distinct entries.
func (s *MoodService) LogMood(ctx context.Context, userID uuid.UUID, label models.MoodLabel, notes string) (*models.Mood, error) {
	if !label.IsValid() {
		return nil, ErrInvalidMood
	}

	mood := &models.Mood{
		UserID: userID,
		Mood:   label,
		Notes:  strings.TrimSpace(notes),
		Date:   s.now(),
	}

	if err := s.store.Create(ctx, mood); err != nil {
		return nil, err
	}

	return mood, nil
}

// LatestMood returns the most recently dated entry, or nil (not an error)
// when the user has not logged anything yet.
func (s *MoodService) LatestMood(ctx context.Context, userID uuid.UUID) (*models.Mood, error) {
	mood, err := s.store.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMoodNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mood, nil
}

// MoodRange returns entries within [start, end] inclusive, newest first.
// When either bound is zero the range defaults to the trailing 7 days, and
// limit falls back to 168 when unset or negative.
func (s *MoodService) MoodRange(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]*models.Mood, error) {
	if start.IsZero() || end.IsZero() {
		end = s.now()
		start = end.AddDate(0, 0, -defaultRangeDays)
	}
	if limit <= 0 {
		limit = defaultRangeLimit
	}

	return s.store.GetRange(ctx, userID, start, end, limit)
}
