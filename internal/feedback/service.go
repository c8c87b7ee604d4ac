package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/api/models"
)

// Service errors.
var (
	// ErrNoActiveUser is returned when feedback is submitted without an
	// authenticated user. There is no anonymous fallback identity.
	ErrNoActiveUser = errors.New("no active user")
)

// MaxCommentsLength bounds the free-form comments field.
const MaxCommentsLength = 1000

// SubmitInput describes a season outcome report.
type SubmitInput struct {
	ActualYield float64
	Issues      []string
	Rating      int
	Comments    string
}

// Service provides feedback operations.
type Service struct {
	repo Repository
}

// NewService creates a new feedback service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records a season outcome for a farm. Written once per user action,
// never retried and never updated.
func (s *Service) Submit(ctx context.Context, userID, farmID string, input SubmitInput) (*Feedback, error) {
	if userID == "" {
		return nil, ErrNoActiveUser
	}

	if fieldErrors := validateSubmitInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	fb := &Feedback{
		ID:          "fbk_" + uuid.New().String()[:22],
		FarmID:      farmID,
		ActualYield: input.ActualYield,
		Issues:      input.Issues,
		Rating:      input.Rating,
		Comments:    input.Comments,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	return fb, nil
}

// ListByFarm retrieves all feedback for a farm, most recent first.
func (s *Service) ListByFarm(ctx context.Context, farmID string) ([]*Feedback, error) {
	return s.repo.ListByFarm(ctx, farmID)
}

// LastSeasonYield returns the most recently reported actual yield for a farm,
// or 0 when the farm has no feedback yet.
func (s *Service) LastSeasonYield(ctx context.Context, farmID string) (float64, error) {
	latest, err := s.repo.LatestByFarm(ctx, farmID)
	if err != nil {
		if errors.Is(err, ErrFeedbackNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return latest.ActualYield, nil
}

// validateSubmitInput validates a season outcome report.
func validateSubmitInput(input SubmitInput) []models.FieldError {
	var errs []models.FieldError

	if input.Rating < 1 || input.Rating > 5 {
		errs = append(errs, models.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}

	if input.ActualYield < 0 {
		errs = append(errs, models.FieldError{Field: "actualYield", Message: "must not be negative"})
	}

	if len(input.Comments) > MaxCommentsLength {
		errs = append(errs, models.FieldError{Field: "comments", Message: "must be at most 1000 characters"})
	}

	return errs
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
