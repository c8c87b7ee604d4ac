package farm

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	farms map[string]*Farm
}

// NewInMemoryRepository creates a new in-memory farm repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		farms: make(map[string]*Farm),
	}
}

// Get retrieves a farm by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.farms[id]
	if !ok {
		return nil, ErrFarmNotFound
	}

	// Return a copy
	cpy := *f
	return &cpy, nil
}

// GetByUserAndID retrieves a farm by user ID and farm ID.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, farmID string) (*Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.farms[farmID]
	if !ok {
		return nil, ErrFarmNotFound
	}

	if f.UserID != userID {
		return nil, ErrFarmNotFound
	}

	// Return a copy
	cpy := *f
	return &cpy, nil
}

// List retrieves all farms for a user with pagination.
func (r *InMemoryRepository) List(_ context.Context, userID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var farms []*Farm
	for _, f := range r.farms {
		if f.UserID == userID {
			cpy := *f
			farms = append(farms, &cpy)
		}
	}

	sort.Slice(farms, func(i, j int) bool {
		return farms[i].CreatedAt.After(farms[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{
		Items: farms,
	}

	if len(farms) > limit {
		result.Items = farms[:limit]
		result.NextCursor = farms[limit-1].ID
	}

	return result, nil
}

// All retrieves every farm.
func (r *InMemoryRepository) All(_ context.Context) ([]*Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var farms []*Farm
	for _, f := range r.farms {
		cpy := *f
		farms = append(farms, &cpy)
	}

	sort.Slice(farms, func(i, j int) bool {
		return farms[i].CreatedAt.Before(farms[j].CreatedAt)
	})

	return farms, nil
}

// Create creates a new farm.
func (r *InMemoryRepository) Create(_ context.Context, f *Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *f
	r.farms[f.ID] = &cpy
	return nil
}

// Update updates an existing farm.
func (r *InMemoryRepository) Update(_ context.Context, f *Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.farms[f.ID]; !ok {
		return ErrFarmNotFound
	}

	cpy := *f
	r.farms[f.ID] = &cpy
	return nil
}

// Delete deletes a farm by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.farms, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
