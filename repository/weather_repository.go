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

// ErrWeatherNotFound is returned when no snapshot matches the lookup
var ErrWeatherNotFound = errors.New("weather snapshot not found")

const weatherColumns = `id, user_id, city, country, temperature, feels_like,
		description, main, icon, humidity, wind_speed, date, created_at`

// WeatherRepository handles database operations for weather snapshots
type WeatherRepository struct {
	db *pgxpool.Pool
}

// NewWeatherRepository creates a new weather repository
func NewWeatherRepository(db *pgxpool.Pool) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Create inserts a new weather snapshot. History is append-only.
func (r *WeatherRepository) Create(ctx context.Context, w *models.Weather) error {
	query := `
		INSERT INTO weather (user_id, city, country, temperature, feels_like,
			description, main, icon, humidity, wind_speed, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		w.UserID,
		w.City,
		w.Country,
		w.Temperature,
		w.FeelsLike,
		w.Description,
		w.Main,
		w.Icon,
		w.Humidity,
		w.WindSpeed,
		w.Date,
	).Scan(&w.ID, &w.CreatedAt)
}

// GetRecent retrieves the newest snapshot dated at or after the cutoff
func (r *WeatherRepository) GetRecent(ctx context.Context, userID uuid.UUID, since time.Time) (*models.Weather, error) {
	query := `
		SELECT ` + weatherColumns + `
		FROM weather
		WHERE user_id = $1 AND date >= $2
		ORDER BY date DESC
		LIMIT 1`

	w := &models.Weather{}
	err := r.scan(r.db.QueryRow(ctx, query, userID, since), w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeatherNotFound
		}
		return nil, err
	}

	return w, nil
}

// List retrieves snapshots for a user, newest first, capped at limit
func (r *WeatherRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Weather, error) {
	query := `
		SELECT ` + weatherColumns + `
		FROM weather
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.Weather
	for rows.Next() {
		w := &models.Weather{}
		if err := r.scan(rows, w); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, w)
	}

	return snapshots, rows.Err()
}

func (r *WeatherRepository) scan(row pgx.Row, w *models.Weather) error {
	return row.Scan(
		&w.ID,
		&w.UserID,
		&w.City,
		&w.Country,
		&w.Temperature,
		&w.FeelsLike,
		&w.Description,
		&w.Main,
		&w.Icon,
		&w.Humidity,
		&w.WindSpeed,
		&w.Date,
		&w.CreatedAt,
	)
}
