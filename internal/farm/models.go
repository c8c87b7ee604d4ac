// Package farm provides farm profile management services.
package farm

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrFarmNotFound = errors.New("farm not found")
)

// IrrigationMethod is how a farm is irrigated.
type IrrigationMethod string

// Supported irrigation methods.
const (
	IrrigationDrip      IrrigationMethod = "drip"
	IrrigationSprinkler IrrigationMethod = "sprinkler"
	IrrigationFlood     IrrigationMethod = "flood"
	IrrigationManual    IrrigationMethod = "manual"
)

// ParseIrrigationMethod parses an irrigation method string.
func ParseIrrigationMethod(s string) (IrrigationMethod, bool) {
	switch IrrigationMethod(s) {
	case IrrigationDrip, IrrigationSprinkler, IrrigationFlood, IrrigationManual:
		return IrrigationMethod(s), true
	}
	return "", false
}

// SoilHealth holds the measured soil nutrient scores for a farm.
// Nutrient scores are 0-100; pH follows the usual 0-14 scale.
type SoilHealth struct {
	Nitrogen   float64
	Phosphorus float64
	Potassium  float64
	PH         float64
}

// Farm represents a farm profile.
type Farm struct {
	ID               string
	UserID           string
	Name             string
	Location         string
	SizeAcres        float64
	CropType         string
	SowingDate       time.Time
	IrrigationMethod IrrigationMethod
	Soil             SoilHealth
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
