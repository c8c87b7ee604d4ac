// Package worker provides background job processing for AgriVision.
package worker

import "time"

// AlertConfig holds configuration for the alert refresh job.
type AlertConfig struct {
	// Concurrency is the number of farms evaluated in parallel.
	// Default: 3
	Concurrency int

	// FarmTimeout bounds the forecast fetch and alert writes for one farm.
	// Default: 30 seconds
	FarmTimeout time.Duration

	// DedupWindow is how far back to look when suppressing duplicate alerts.
	// A farm gets at most one alert per category+title inside the window.
	// Default: 24 hours
	DedupWindow time.Duration

	// HeavyRainThresholdMM is the forecast daily rainfall that raises a
	// heavy-rain alert. Default: 10
	HeavyRainThresholdMM float64

	// HeatThresholdC is the forecast daily max temperature that raises a
	// heat alert. Default: 40
	HeatThresholdC int
}

// DefaultAlertConfig returns the default alert refresh configuration.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		Concurrency:          3,
		FarmTimeout:          30 * time.Second,
		DedupWindow:          24 * time.Hour,
		HeavyRainThresholdMM: 10,
		HeatThresholdC:       40,
	}
}

// withDefaults fills zero fields with defaults.
func (c AlertConfig) withDefaults() AlertConfig {
	def := DefaultAlertConfig()
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.FarmTimeout <= 0 {
		c.FarmTimeout = def.FarmTimeout
	}
	if c.DedupWindow <= 0 {
		c.DedupWindow = def.DedupWindow
	}
	if c.HeavyRainThresholdMM <= 0 {
		c.HeavyRainThresholdMM = def.HeavyRainThresholdMM
	}
	if c.HeatThresholdC <= 0 {
		c.HeatThresholdC = def.HeatThresholdC
	}
	return c
}
