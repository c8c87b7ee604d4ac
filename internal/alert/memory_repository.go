package alert

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	alerts []*Alert
}

// NewInMemoryRepository creates a new in-memory alert repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// ListByFarm retrieves all alerts for a farm, most recent first.
func (r *InMemoryRepository) ListByFarm(_ context.Context, farmID string) ([]*Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var alerts []*Alert
	for _, a := range r.alerts {
		if a.FarmID == farmID {
			cpy := *a
			alerts = append(alerts, &cpy)
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts, nil
}

// Create stores a new alert.
func (r *InMemoryRepository) Create(_ context.Context, a *Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *a
	r.alerts = append(r.alerts, &cpy)
	return nil
}

// ExistsSimilar reports whether a matching alert was issued on or after since.
func (r *InMemoryRepository) ExistsSimilar(_ context.Context, farmID string, category Category, title string, since time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.alerts {
		if a.FarmID == farmID && a.Category == category && a.Title == title && !a.CreatedAt.Before(since) {
			return true, nil
		}
	}

	return false, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
