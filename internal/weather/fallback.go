package weather

import "time"

// Fallback snapshot constants. The gateway substitutes these fixed values
// whenever the provider is unreachable so the dashboard always renders.
const (
	fallbackTemperature = 28.0
	fallbackHumidity    = 65.0
	fallbackWindKmh     = 12
	fallbackPressure    = 1012.0
	fallbackUVIndex     = 7
	fallbackCondition   = "Partly Cloudy"
)

// fallbackDays is the canned 5-day forecast used when the provider is down.
var fallbackDays = [ForecastDays]ForecastDay{
	{MinTemp: 22, MaxTemp: 32, Humidity: 70, Rainfall: 5, WindSpeed: 12, Pressure: 1012, Condition: "Partly Cloudy"},
	{MinTemp: 24, MaxTemp: 34, Humidity: 60, Rainfall: 0, WindSpeed: 10, Pressure: 1013, Condition: "Sunny"},
	{MinTemp: 23, MaxTemp: 31, Humidity: 75, Rainfall: 15, WindSpeed: 14, Pressure: 1009, Condition: "Light Rain"},
	{MinTemp: 22, MaxTemp: 30, Humidity: 72, Rainfall: 8, WindSpeed: 11, Pressure: 1010, Condition: "Cloudy"},
	{MinTemp: 23, MaxTemp: 33, Humidity: 62, Rainfall: 0, WindSpeed: 9, Pressure: 1014, Condition: "Sunny"},
}

// FallbackSnapshot returns the fixed snapshot served when the provider call
// fails for any reason. Source is always SourceFallback and the forecast
// always has exactly ForecastDays entries.
func FallbackSnapshot(location string) *Snapshot {
	snap := &Snapshot{
		Location: location,
		Source:   SourceFallback,
		Current: Current{
			Temperature:        fallbackTemperature,
			Humidity:           fallbackHumidity,
			Rainfall:           0,
			WindSpeed:          fallbackWindKmh,
			Pressure:           fallbackPressure,
			UVIndex:            fallbackUVIndex,
			Evapotranspiration: Evapotranspiration(fallbackTemperature),
			Condition:          fallbackCondition,
		},
		Forecast:  make([]ForecastDay, ForecastDays),
		FetchedAt: time.Now(),
	}

	for i, day := range fallbackDays {
		day.Date = DayLabel(i)
		snap.Forecast[i] = day
	}

	return snap
}
