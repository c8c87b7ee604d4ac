package farm

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

// NewPostgresRepository creates a new PostgreSQL farm repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const farmColumns = `
	id, user_id, name, location, size_acres, crop_type, sowing_date,
	irrigation_method, soil_nitrogen, soil_phosphorus, soil_potassium, soil_ph,
	created_at, updated_at
`

// Get retrieves a farm by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1`
	return r.scanFarm(ctx, query, id)
}

// GetByUserAndID retrieves a farm by user ID and farm ID.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, farmID string) (*Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1 AND user_id = $2`
	return r.scanFarm(ctx, query, farmID, userID)
}

// scanFarm scans a farm from a query result.
func (r *PostgresRepository) scanFarm(ctx context.Context, query string, args ...interface{}) (*Farm, error) {
	var farm Farm

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&farm.ID,
		&farm.UserID,
		&farm.Name,
		&farm.Location,
		&farm.SizeAcres,
		&farm.CropType,
		&farm.SowingDate,
		&farm.IrrigationMethod,
		&farm.Soil.Nitrogen,
		&farm.Soil.Phosphorus,
		&farm.Soil.Potassium,
		&farm.Soil.PH,
		&farm.CreatedAt,
		&farm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFarmNotFound
		}
		return nil, err
	}

	return &farm, nil
}

// List retrieves all farms for a user with pagination.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT ` + farmColumns + `
		FROM farms
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	farms, err := r.collectFarms(rows)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Items: farms,
	}

	// If we got more results than the limit, there are more pages
	if len(farms) > limit {
		result.Items = farms[:limit]
		// Use the last item's ID as the cursor for the next page
		result.NextCursor = farms[limit-1].ID
	}

	return result, nil
}

// All retrieves every farm.
func (r *PostgresRepository) All(ctx context.Context) ([]*Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectFarms(rows)
}

// collectFarms scans all remaining rows into farms.
func (r *PostgresRepository) collectFarms(rows pgx.Rows) ([]*Farm, error) {
	var farms []*Farm
	for rows.Next() {
		var farm Farm
		err := rows.Scan(
			&farm.ID,
			&farm.UserID,
			&farm.Name,
			&farm.Location,
			&farm.SizeAcres,
			&farm.CropType,
			&farm.SowingDate,
			&farm.IrrigationMethod,
			&farm.Soil.Nitrogen,
			&farm.Soil.Phosphorus,
			&farm.Soil.Potassium,
			&farm.Soil.PH,
			&farm.CreatedAt,
			&farm.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		farms = append(farms, &farm)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return farms, nil
}

// Create creates a new farm.
func (r *PostgresRepository) Create(ctx context.Context, farm *Farm) error {
	query := `
		INSERT INTO farms (
			id, user_id, name, location, size_acres, crop_type, sowing_date,
			irrigation_method, soil_nitrogen, soil_phosphorus, soil_potassium, soil_ph,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		farm.ID,
		farm.UserID,
		farm.Name,
		farm.Location,
		farm.SizeAcres,
		farm.CropType,
		farm.SowingDate,
		farm.IrrigationMethod,
		farm.Soil.Nitrogen,
		farm.Soil.Phosphorus,
		farm.Soil.Potassium,
		farm.Soil.PH,
		farm.CreatedAt,
		farm.UpdatedAt,
	)
	return err
}

// Update updates an existing farm.
func (r *PostgresRepository) Update(ctx context.Context, farm *Farm) error {
	query := `
		UPDATE farms SET
			name = $2,
			location = $3,
			size_acres = $4,
			crop_type = $5,
			sowing_date = $6,
			irrigation_method = $7,
			soil_nitrogen = $8,
			soil_phosphorus = $9,
			soil_potassium = $10,
			soil_ph = $11,
			updated_at = $12
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		farm.ID,
		farm.Name,
		farm.Location,
		farm.SizeAcres,
		farm.CropType,
		farm.SowingDate,
		farm.IrrigationMethod,
		farm.Soil.Nitrogen,
		farm.Soil.Phosphorus,
		farm.Soil.Potassium,
		farm.Soil.PH,
		farm.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrFarmNotFound
	}

	return nil
}

// Delete deletes a farm by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM farms WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
