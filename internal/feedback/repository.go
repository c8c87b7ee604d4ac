package feedback

import "context"

// Repository defines the interface for feedback persistence.
type Repository interface {
	// Create stores a new feedback record.
	Create(ctx context.Context, fb *Feedback) error

	// ListByFarm retrieves all feedback for a farm, most recent first.
	ListByFarm(ctx context.Context, farmID string) ([]*Feedback, error)

	// LatestByFarm retrieves the most recent feedback for a farm.
	// Returns ErrFeedbackNotFound when the farm has none. The reported actual
	// yield serves as the last-season baseline for yield predictions.
	LatestByFarm(ctx context.Context, farmID string) (*Feedback, error)
}
