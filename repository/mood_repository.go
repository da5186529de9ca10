package repository

import (
	"context"
	"errors"
	"time"

	"moodtracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMoodNotFound is returned when a user has no mood entries yet
var ErrMoodNotFound = errors.New("mood entry not found")

// MoodRepository handles database operations for mood entries
type MoodRepository struct {
	db *pgxpool.Pool
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *pgxpool.Pool) *MoodRepository {
	return &MoodRepository{db: db}
}

// Create inserts a new mood entry. Entries are never updated or deleted.
func (r *MoodRepository) Create(ctx context.Context, mood *models.Mood) error {
	query := `
		INSERT INTO moods (user_id, mood, notes, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		mood.UserID,
		mood.Mood,
		mood.Notes,
		mood.Date,
	).Scan(&mood.ID, &mood.CreatedAt)
}

// GetLatest retrieves the most recently dated entry for a user
func (r *MoodRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*models.Mood, error) {
	query := `
		SELECT id, user_id, mood, notes, date, created_at
		FROM moods
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT 1`

	mood := &models.Mood{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&mood.ID,
		&mood.UserID,
		&mood.Mood,
		&mood.Notes,
		&mood.Date,
		&mood.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMoodNotFound
		}
		return nil, err
	}

	return mood, nil
}

// GetRange retrieves entries within [start, end] inclusive, newest first, capped at limit
func (r *MoodRepository) GetRange(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]*models.Mood, error) {
	query := `
		SELECT id, user_id, mood, notes, date, created_at
		FROM moods
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, userID, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []*models.Mood
	for rows.Next() {
		mood := &models.Mood{}
		err := rows.Scan(
			&mood.ID,
			&mood.UserID,
			&mood.Mood,
			&mood.Notes,
			&mood.Date,
			&mood.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		moods = append(moods, mood)
	}

	return moods, rows.Err()
}
