package weather

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrEmptyForecast       = errors.New("provider returned an empty forecast")
	ErrMissingLocation     = errors.New("location is required")
)

// Source tags where a snapshot came from. Callers use it to distinguish fresh
// provider data from the canned fallback without inspecting logs.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// ForecastDays is the number of daily entries a snapshot carries, for both
// live and fallback data.
const ForecastDays = 5

// StepsPerDay is the number of 3-hour timesteps the provider emits per
// calendar day. Daily downsampling picks every StepsPerDay-th step.
const StepsPerDay = 8

// Snapshot is the normalized multi-day forecast for one location.
// Produced fresh on every request and never persisted.
type Snapshot struct {
	Location  string
	Source    Source
	Current   Current
	Forecast  []ForecastDay
	FetchedAt time.Time
}

// Current is the reading for the first provider timestep.
type Current struct {
	// Temperature in Celsius
	Temperature float64

	// Humidity percentage (0-100)
	Humidity float64

	// Rainfall in mm over the current 3-hour window (0 when absent)
	Rainfall float64

	// WindSpeed in km/h, rounded to the nearest integer
	WindSpeed int

	// Atmospheric pressure in hPa
	Pressure float64

	// UVIndex placeholder; the 5-day forecast product carries no UV data
	UVIndex int

	// Evapotranspiration estimate in mm/day
	Evapotranspiration float64

	Condition string
}

// ForecastDay is one downsampled calendar day of forecast.
type ForecastDay struct {
	// Date is a display label: "Today", "Tomorrow", "Day N"
	Date string

	// Temperatures in Celsius, rounded
	MinTemp int
	MaxTemp int

	// Humidity percentage (0-100)
	Humidity float64

	// Rainfall in mm over the sampled 3-hour window (0 when absent)
	Rainfall float64

	// WindSpeed in km/h, rounded
	WindSpeed int

	// Atmospheric pressure in hPa
	Pressure float64

	Condition string
}

// Step is one 3-hourly point of the provider's raw series, already in metric
// units but otherwise unshaped.
type Step struct {
	Time        time.Time
	Temp        float64
	TempMin     float64
	TempMax     float64
	Humidity    float64
	Pressure    float64
	Rainfall3h  float64 // mm over the 3-hour window, 0 when the provider omits it
	WindSpeedMS float64 // m/s
	Condition   string
}

// Series is the provider's 3-hourly forecast series for one location.
type Series struct {
	Location string
	Steps    []Step
}

// KmhFromMS converts a provider wind speed in m/s to whole km/h.
func KmhFromMS(ms float64) int {
	return int(math.Round(ms * 3.6))
}

// Evapotranspiration estimates crop water loss in mm/day from temperature,
// rounded to one decimal. Simple linear model pending a real ET estimator.
func Evapotranspiration(tempC float64) float64 {
	return math.Round(tempC*0.15*10) / 10
}

// DayLabel returns the display label for a forecast day index.
func DayLabel(index int) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("Day %d", index+1)
	}
}

// Normalize shapes a raw 3-hourly series into a Snapshot: the first step
// becomes the current reading and every StepsPerDay-th step becomes one
// forecast day, capped at ForecastDays.
func Normalize(series *Series) *Snapshot {
	first := series.Steps[0]

	snap := &Snapshot{
		Location: series.Location,
		Source:   SourceLive,
		Current: Current{
			Temperature:        first.Temp,
			Humidity:           first.Humidity,
			Rainfall:           first.Rainfall3h,
			WindSpeed:          KmhFromMS(first.WindSpeedMS),
			Pressure:           first.Pressure,
			UVIndex:            fallbackUVIndex,
			Evapotranspiration: Evapotranspiration(first.Temp),
			Condition:          first.Condition,
		},
		FetchedAt: time.Now(),
	}

	for i := 0; i < len(series.Steps) && len(snap.Forecast) < ForecastDays; i += StepsPerDay {
		step := series.Steps[i]
		snap.Forecast = append(snap.Forecast, ForecastDay{
			Date:      DayLabel(len(snap.Forecast)),
			MinTemp:   int(math.Round(step.TempMin)),
			MaxTemp:   int(math.Round(step.TempMax)),
			Humidity:  step.Humidity,
			Rainfall:  step.Rainfall3h,
			WindSpeed: KmhFromMS(step.WindSpeedMS),
			Pressure:  step.Pressure,
			Condition: step.Condition,
		})
	}

	return snap
}
