package repository

import (
	"context"
	"errors"

	"moodtracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrExportNotFound is returned when no export matches the lookup
var ErrExportNotFound = errors.New("mood export not found")

// ExportRepository handles database operations for mood exports
type ExportRepository struct {
	db *pgxpool.Pool
}

// NewExportRepository creates a new export repository
func NewExportRepository(db *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create records a generated export
func (r *ExportRepository) Create(ctx context.Context, export *models.MoodExport) error {
	query := `
		INSERT INTO mood_exports (id, user_id, storage_path, entry_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		export.ID,
		export.UserID,
		export.StoragePath,
		export.EntryCount,
	).Scan(&export.CreatedAt)
}

// GetByID retrieves an export owned by the given user
func (r *ExportRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.MoodExport, error) {
	query := `
		SELECT id, user_id, storage_path, entry_count, created_at
		FROM mood_exports
		WHERE id = $1 AND user_id = $2`

	export := &models.MoodExport{}
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&export.ID,
		&export.UserID,
		&export.StoragePath,
		&export.EntryCount,
		&export.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}

	return export, nil
}
