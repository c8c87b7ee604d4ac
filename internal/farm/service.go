package farm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/api/models"
)

// Service errors.
var (
	// ErrNoActiveUser is returned when a write is attempted without an
	// authenticated user. There is no anonymous fallback identity.
	ErrNoActiveUser = errors.New("no active user")
)

// Validation constants.
const (
	MaxNameLength     = 80
	MaxLocationLength = 120
	SowingDateLayout  = "2006-01-02"
)

// Service provides farm operations.
type Service struct {
	repo Repository
}

// NewService creates a new farm service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all farms for a user.
func (s *Service) List(ctx context.Context, userID string, limit int) (*models.PagedFarms, error) {
	result, err := s.repo.List(ctx, userID, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]models.Farm, 0, len(result.Items))
	for _, f := range result.Items {
		items = append(items, s.toAPIFarm(f))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedFarms{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Get retrieves a farm by ID for a user.
func (s *Service) Get(ctx context.Context, userID, farmID string) (*models.Farm, error) {
	farm, err := s.repo.GetByUserAndID(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}

	result := s.toAPIFarm(farm)
	return &result, nil
}

// Resolve retrieves the domain farm for a user. Handlers that need the full
// farm record (dashboard, advisory, yield) use this instead of Get.
func (s *Service) Resolve(ctx context.Context, userID, farmID string) (*Farm, error) {
	return s.repo.GetByUserAndID(ctx, userID, farmID)
}

// Create creates a new farm for a user.
func (s *Service) Create(ctx context.Context, userID string, input *models.FarmCreateRequest) (*models.Farm, error) {
	if userID == "" {
		return nil, ErrNoActiveUser
	}

	if fieldErrors := s.validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	sowingDate, _ := time.Parse(SowingDateLayout, input.SowingDate)
	method, _ := ParseIrrigationMethod(input.IrrigationMethod)

	now := time.Now()
	farm := &Farm{
		ID:               "frm_" + uuid.New().String()[:22],
		UserID:           userID,
		Name:             input.Name,
		Location:         input.Location,
		SizeAcres:        input.SizeAcres,
		CropType:         input.CropType,
		SowingDate:       sowingDate,
		IrrigationMethod: method,
		Soil: SoilHealth{
			Nitrogen:   input.SoilHealth.Nitrogen,
			Phosphorus: input.SoilHealth.Phosphorus,
			Potassium:  input.SoilHealth.Potassium,
			PH:         input.SoilHealth.PH,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, farm); err != nil {
		return nil, err
	}

	result := s.toAPIFarm(farm)
	return &result, nil
}

// Update updates an existing farm for a user.
func (s *Service) Update(ctx context.Context, userID, farmID string, input *models.FarmUpdateRequest) (*models.Farm, error) {
	if userID == "" {
		return nil, ErrNoActiveUser
	}

	farm, err := s.repo.GetByUserAndID(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := s.validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		farm.Name = *input.Name
	}
	if input.Location != nil {
		farm.Location = *input.Location
	}
	if input.SizeAcres != nil {
		farm.SizeAcres = *input.SizeAcres
	}
	if input.CropType != nil {
		farm.CropType = *input.CropType
	}
	if input.SowingDate != nil {
		sowingDate, _ := time.Parse(SowingDateLayout, *input.SowingDate)
		farm.SowingDate = sowingDate
	}
	if input.IrrigationMethod != nil {
		method, _ := ParseIrrigationMethod(*input.IrrigationMethod)
		farm.IrrigationMethod = method
	}
	if input.SoilHealth != nil {
		farm.Soil = SoilHealth{
			Nitrogen:   input.SoilHealth.Nitrogen,
			Phosphorus: input.SoilHealth.Phosphorus,
			Potassium:  input.SoilHealth.Potassium,
			PH:         input.SoilHealth.PH,
		}
	}
	farm.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, farm); err != nil {
		return nil, err
	}

	result := s.toAPIFarm(farm)
	return &result, nil
}

// Delete deletes a farm for a user.
func (s *Service) Delete(ctx context.Context, userID, farmID string) error {
	if userID == "" {
		return ErrNoActiveUser
	}

	// Verify ownership
	_, err := s.repo.GetByUserAndID(ctx, userID, farmID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, farmID)
}

// validateCreateInput validates the create farm input.
func (s *Service) validateCreateInput(input *models.FarmCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	} else if len(input.Name) > MaxNameLength {
		errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
	}

	if input.Location == "" {
		errs = append(errs, models.FieldError{Field: "location", Message: "is required"})
	} else if len(input.Location) > MaxLocationLength {
		errs = append(errs, models.FieldError{Field: "location", Message: "must be at most 120 characters"})
	}

	if input.SizeAcres <= 0 {
		errs = append(errs, models.FieldError{Field: "sizeAcres", Message: "must be greater than 0"})
	}

	if input.CropType == "" {
		errs = append(errs, models.FieldError{Field: "cropType", Message: "is required"})
	}

	if input.SowingDate == "" {
		errs = append(errs, models.FieldError{Field: "sowingDate", Message: "is required"})
	} else if _, err := time.Parse(SowingDateLayout, input.SowingDate); err != nil {
		errs = append(errs, models.FieldError{Field: "sowingDate", Message: "must be a date in YYYY-MM-DD format"})
	}

	if _, ok := ParseIrrigationMethod(input.IrrigationMethod); !ok {
		errs = append(errs, models.FieldError{Field: "irrigationMethod", Message: "must be one of drip, sprinkler, flood, manual"})
	}

	errs = append(errs, s.validateSoilHealth(&input.SoilHealth)...)

	return errs
}

// validateUpdateInput validates the update farm input.
func (s *Service) validateUpdateInput(input *models.FarmUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil {
		if *input.Name == "" {
			errs = append(errs, models.FieldError{Field: "name", Message: "cannot be empty"})
		} else if len(*input.Name) > MaxNameLength {
			errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
		}
	}

	if input.Location != nil {
		if *input.Location == "" {
			errs = append(errs, models.FieldError{Field: "location", Message: "cannot be empty"})
		} else if len(*input.Location) > MaxLocationLength {
			errs = append(errs, models.FieldError{Field: "location", Message: "must be at most 120 characters"})
		}
	}

	if input.SizeAcres != nil && *input.SizeAcres <= 0 {
		errs = append(errs, models.FieldError{Field: "sizeAcres", Message: "must be greater than 0"})
	}

	if input.CropType != nil && *input.CropType == "" {
		errs = append(errs, models.FieldError{Field: "cropType", Message: "cannot be empty"})
	}

	if input.SowingDate != nil {
		if _, err := time.Parse(SowingDateLayout, *input.SowingDate); err != nil {
			errs = append(errs, models.FieldError{Field: "sowingDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}

	if input.IrrigationMethod != nil {
		if _, ok := ParseIrrigationMethod(*input.IrrigationMethod); !ok {
			errs = append(errs, models.FieldError{Field: "irrigationMethod", Message: "must be one of drip, sprinkler, flood, manual"})
		}
	}

	if input.SoilHealth != nil {
		errs = append(errs, s.validateSoilHealth(input.SoilHealth)...)
	}

	return errs
}

// validateSoilHealth validates soil nutrient scores and pH.
func (s *Service) validateSoilHealth(soil *models.SoilHealth) []models.FieldError {
	var errs []models.FieldError

	nutrients := []struct {
		field string
		value float64
	}{
		{"soilHealth.nitrogen", soil.Nitrogen},
		{"soilHealth.phosphorus", soil.Phosphorus},
		{"soilHealth.potassium", soil.Potassium},
	}
	for _, n := range nutrients {
		if n.value < 0 || n.value > 100 {
			errs = append(errs, models.FieldError{
				Field:   n.field,
				Message: "must be between 0 and 100",
			})
		}
	}

	if soil.PH < 0 || soil.PH > 14 {
		errs = append(errs, models.FieldError{
			Field:   "soilHealth.ph",
			Message: "must be between 0 and 14",
		})
	}

	return errs
}

// toAPIFarm converts a domain Farm to an API Farm.
func (s *Service) toAPIFarm(f *Farm) models.Farm {
	return models.Farm{
		ID:               f.ID,
		Name:             f.Name,
		Location:         f.Location,
		SizeAcres:        f.SizeAcres,
		CropType:         f.CropType,
		SowingDate:       f.SowingDate.Format(SowingDateLayout),
		IrrigationMethod: string(f.IrrigationMethod),
		SoilHealth: models.SoilHealth{
			Nitrogen:   f.Soil.Nitrogen,
			Phosphorus: f.Soil.Phosphorus,
			Potassium:  f.Soil.Potassium,
			PH:         f.Soil.PH,
		},
		CreatedAt: models.Timestamp(f.CreatedAt),
		UpdatedAt: models.Timestamp(f.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
