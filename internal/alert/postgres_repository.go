package alert

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL alert repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByFarm retrieves all alerts for a farm, most recent first.
func (r *PostgresRepository) ListByFarm(ctx context.Context, farmID string) ([]*Alert, error) {
	query := `
		SELECT id, farm_id, category, priority, title, message, action_required, created_at
		FROM alerts
		WHERE farm_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		var a Alert
		err := rows.Scan(
			&a.ID,
			&a.FarmID,
			&a.Category,
			&a.Priority,
			&a.Title,
			&a.Message,
			&a.ActionRequired,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// Create stores a new alert.
func (r *PostgresRepository) Create(ctx context.Context, alert *Alert) error {
	query := `
		INSERT INTO alerts (
			id, farm_id, category, priority, title, message, action_required, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		alert.ID,
		alert.FarmID,
		alert.Category,
		alert.Priority,
		alert.Title,
		alert.Message,
		alert.ActionRequired,
		alert.CreatedAt,
	)
	return err
}

// ExistsSimilar reports whether a matching alert was issued on or after since.
func (r *PostgresRepository) ExistsSimilar(ctx context.Context, farmID string, category Category, title string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE farm_id = $1 AND category = $2 AND title = $3 AND created_at >= $4
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, farmID, category, title, since).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
