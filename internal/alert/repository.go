package alert

import (
	"context"
	"time"
)

// Repository defines the interface for alert persistence.
type Repository interface {
	// ListByFarm retrieves all alerts for a farm, most recent first.
	ListByFarm(ctx context.Context, farmID string) ([]*Alert, error)

	// Create stores a new alert.
	Create(ctx context.Context, alert *Alert) error

	// ExistsSimilar reports whether the farm already has an alert with the
	// same category and title issued on or after the given time. Used by the
	// refresh worker to avoid raising duplicates.
	ExistsSimilar(ctx context.Context, farmID string, category Category, title string, since time.Time) (bool, error)
}
