package advisory

import (
	"context"
	"time"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/farm"
)

// DateLayout is the wire format for irrigation dates.
const DateLayout = "2006-01-02"

// Service validates advisory requests before handing them to the engine.
type Service struct {
	engine Engine
}

// NewService creates a new advisory service.
func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// IrrigationAdvice validates the last-irrigation date and the farm's
// irrigation method, then asks the engine for a schedule.
func (s *Service) IrrigationAdvice(ctx context.Context, f *farm.Farm, lastIrrigationDate string) (*IrrigationAdvice, error) {
	var errs []models.FieldError

	var lastIrrigation time.Time
	if lastIrrigationDate == "" {
		errs = append(errs, models.FieldError{Field: "lastIrrigationDate", Message: "is required"})
	} else {
		parsed, err := time.Parse(DateLayout, lastIrrigationDate)
		if err != nil {
			errs = append(errs, models.FieldError{Field: "lastIrrigationDate", Message: "must be a date in YYYY-MM-DD format"})
		}
		lastIrrigation = parsed
	}

	if _, ok := farm.ParseIrrigationMethod(string(f.IrrigationMethod)); !ok {
		errs = append(errs, models.FieldError{Field: "irrigationMethod", Message: "farm has no known irrigation method"})
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return s.engine.IrrigationAdvice(ctx, f, lastIrrigation)
}

// FertilizerAdvice validates the crop stage, then asks the engine.
func (s *Service) FertilizerAdvice(ctx context.Context, f *farm.Farm, cropStage string) (*FertilizerAdvice, error) {
	stage, ok := ParseCropStage(cropStage)
	if !ok {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "cropStage", Message: "must be one of germination, vegetative, flowering, fruit_development, maturity"},
		}}
	}

	return s.engine.FertilizerAdvice(ctx, f, stage)
}

// DetectPest validates the image payload, then asks the engine.
func (s *Service) DetectPest(ctx context.Context, image []byte) (*PestDetection, error) {
	if len(image) == 0 {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "image", Message: "is required"},
		}}
	}

	return s.engine.DetectPest(ctx, image)
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
