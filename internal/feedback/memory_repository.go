package feedback

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*Feedback
}

// NewInMemoryRepository creates a new in-memory feedback repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Create stores a new feedback record.
func (r *InMemoryRepository) Create(_ context.Context, fb *Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *fb
	r.records = append(r.records, &cpy)
	return nil
}

// ListByFarm retrieves all feedback for a farm, most recent first.
func (r *InMemoryRepository) ListByFarm(_ context.Context, farmID string) ([]*Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*Feedback
	for _, fb := range r.records {
		if fb.FarmID == farmID {
			cpy := *fb
			records = append(records, &cpy)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// LatestByFarm retrieves the most recent feedback for a farm.
func (r *InMemoryRepository) LatestByFarm(ctx context.Context, farmID string) (*Feedback, error) {
	records, err := r.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrFeedbackNotFound
	}

	return records[0], nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
