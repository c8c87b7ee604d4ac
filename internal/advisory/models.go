// Package advisory produces irrigation, fertilizer, and pest recommendations
// for a farm.
package advisory

import "time"

// CropStage is a phase of plant growth used to select fertilizer advice.
type CropStage string

// Crop stages.
const (
	StageGermination      CropStage = "germination"
	StageVegetative       CropStage = "vegetative"
	StageFlowering        CropStage = "flowering"
	StageFruitDevelopment CropStage = "fruit_development"
	StageMaturity         CropStage = "maturity"
)

// ParseCropStage parses a crop stage string. Unknown stages are rejected,
// never defaulted.
func ParseCropStage(s string) (CropStage, bool) {
	switch CropStage(s) {
	case StageGermination, StageVegetative, StageFlowering, StageFruitDevelopment, StageMaturity:
		return CropStage(s), true
	}
	return "", false
}

// Severity grades a detected pest risk.
type Severity string

// Pest severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Badge returns the display badge color for a severity.
func (s Severity) Badge() string {
	switch s {
	case SeverityHigh:
		return "red"
	case SeverityMedium:
		return "yellow"
	default:
		return "green"
	}
}

// IrrigationAdvice is a request-scoped irrigation recommendation.
type IrrigationAdvice struct {
	Recommendation    string
	NextIrrigation    time.Time
	IntervalDays      int
	WaterAmountLiters float64
	Reasoning         string
}

// FertilizerAdvice is a request-scoped fertilizer recommendation.
type FertilizerAdvice struct {
	Fertilizer        string
	QuantityKgPerAcre float64
	Timing            string
	Method            string
	Reasoning         string
}

// PestDetection is the result of analyzing a crop image. The image itself is
// never persisted.
type PestDetection struct {
	Detected   bool
	PestName   string
	Confidence int
	Severity   Severity
	Treatment  string
}
