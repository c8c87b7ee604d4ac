package models

// Dashboard is the composed overview for one farm. Weather is always
// present; a failing alert or yield source sets the matching unavailable
// flag instead of failing the whole view.
type Dashboard struct {
	Farm    Farm            `json:"farm"`
	Weather WeatherSnapshot `json:"weather"`

	Alerts            []Alert `json:"alerts"`
	AlertsUnavailable bool    `json:"alertsUnavailable,omitempty"`

	Yield            *YieldPrediction `json:"yield,omitempty"`
	YieldUnavailable bool             `json:"yieldUnavailable,omitempty"`

	GeneratedAt Timestamp `json:"generatedAt"`
}
