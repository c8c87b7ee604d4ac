package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides alert operations.
type Service struct {
	repo Repository
}

// NewService creates a new alert service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all alerts for a farm, most recent first.
func (s *Service) List(ctx context.Context, farmID string) ([]*Alert, error) {
	return s.repo.ListByFarm(ctx, farmID)
}

// FilterByCategory returns the alerts matching the given category, preserving
// order. Filtering an already-filtered slice is a no-op.
func FilterByCategory(alerts []*Alert, category Category) []*Alert {
	filtered := make([]*Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Category == category {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// CountByCategory tallies alerts per category. The counts always sum to
// len(alerts).
func CountByCategory(alerts []*Alert) map[Category]int {
	counts := make(map[Category]int)
	for _, a := range alerts {
		counts[a.Category]++
	}
	return counts
}

// CreateInput describes a new alert to raise.
type CreateInput struct {
	FarmID         string
	Category       Category
	Priority       Priority
	Title          string
	Message        string
	ActionRequired bool
}

// Create raises a new alert for a farm.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Alert, error) {
	a := &Alert{
		ID:             "alr_" + uuid.New().String()[:22],
		FarmID:         input.FarmID,
		Category:       input.Category,
		Priority:       input.Priority,
		Title:          input.Title,
		Message:        input.Message,
		ActionRequired: input.ActionRequired,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// ExistsSimilar reports whether the farm already has a matching alert issued
// on or after since.
func (s *Service) ExistsSimilar(ctx context.Context, farmID string, category Category, title string, since time.Time) (bool, error) {
	return s.repo.ExistsSimilar(ctx, farmID, category, title, since)
}
