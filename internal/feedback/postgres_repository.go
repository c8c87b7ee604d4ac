package feedback

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL feedback repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new feedback record.
func (r *PostgresRepository) Create(ctx context.Context, fb *Feedback) error {
	query := `
		INSERT INTO feedback (
			id, farm_id, actual_yield, issues, rating, comments, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		fb.ID,
		fb.FarmID,
		fb.ActualYield,
		fb.Issues,
		fb.Rating,
		fb.Comments,
		fb.CreatedAt,
	)
	return err
}

// ListByFarm retrieves all feedback for a farm, most recent first.
func (r *PostgresRepository) ListByFarm(ctx context.Context, farmID string) ([]*Feedback, error) {
	query := `
		SELECT id, farm_id, actual_yield, issues, rating, comments, created_at
		FROM feedback
		WHERE farm_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Feedback
	for rows.Next() {
		var fb Feedback
		err := rows.Scan(
			&fb.ID,
			&fb.FarmID,
			&fb.ActualYield,
			&fb.Issues,
			&fb.Rating,
			&fb.Comments,
			&fb.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &fb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// LatestByFarm retrieves the most recent feedback for a farm.
func (r *PostgresRepository) LatestByFarm(ctx context.Context, farmID string) (*Feedback, error) {
	query := `
		SELECT id, farm_id, actual_yield, issues, rating, comments, created_at
		FROM feedback
		WHERE farm_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var fb Feedback
	err := r.pool.QueryRow(ctx, query, farmID).Scan(
		&fb.ID,
		&fb.FarmID,
		&fb.ActualYield,
		&fb.Issues,
		&fb.Rating,
		&fb.Comments,
		&fb.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	return &fb, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
