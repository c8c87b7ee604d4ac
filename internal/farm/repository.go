package farm

import "context"

// ListOptions contains options for listing farms.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing farms.
type ListResult struct {
	Items      []*Farm
	NextCursor string
}

// Repository defines the interface for farm data persistence.
type Repository interface {
	// Get retrieves a farm by ID.
	Get(ctx context.Context, id string) (*Farm, error)

	// GetByUserAndID retrieves a farm by user ID and farm ID.
	// Returns ErrFarmNotFound if the farm doesn't exist or doesn't belong to the user.
	GetByUserAndID(ctx context.Context, userID, farmID string) (*Farm, error)

	// List retrieves all farms for a user with pagination.
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)

	// All retrieves every farm. Used by the alert refresh worker.
	All(ctx context.Context) ([]*Farm, error)

	// Create creates a new farm.
	Create(ctx context.Context, farm *Farm) error

	// Update updates an existing farm.
	Update(ctx context.Context, farm *Farm) error

	// Delete deletes a farm by ID.
	Delete(ctx context.Context, id string) error
}
