package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/api/models"
)

// Service provides user profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// RegisterInput describes a new farmer account.
type RegisterInput struct {
	Name     string
	Phone    string
	Language string
	Location string
}

// Register creates a farmer account. OTP verification of the phone number
// happens upstream in the auth flow.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if fieldErrors := validateRegisterInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	u := &User{
		ID:        "usr_" + uuid.New().String()[:22],
		Name:      input.Name,
		Phone:     input.Phone,
		Language:  input.Language,
		Location:  input.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateProfileInput describes profile changes. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name     *string
	Language *string
	Location *string
}

// UpdateProfile applies profile changes to a user.
func (s *Service) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, &ValidationError{Errors: []models.FieldError{
				{Field: "name", Message: "cannot be empty"},
			}}
		}
		u.Name = *input.Name
	}
	if input.Language != nil {
		u.Language = *input.Language
	}
	if input.Location != nil {
		u.Location = *input.Location
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// validateRegisterInput validates a new account request.
func validateRegisterInput(input RegisterInput) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	}
	if input.Phone == "" {
		errs = append(errs, models.FieldError{Field: "phone", Message: "is required"})
	}
	if input.Language == "" {
		errs = append(errs, models.FieldError{Field: "language", Message: "is required"})
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
