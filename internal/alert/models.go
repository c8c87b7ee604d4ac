// Package alert provides farm alert management services.
package alert

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrAlertNotFound = errors.New("alert not found")
)

// Category classifies what an alert is about.
type Category string

// Alert categories.
const (
	CategoryIrrigation Category = "irrigation"
	CategoryFertilizer Category = "fertilizer"
	CategoryPest       Category = "pest"
	CategoryWeather    Category = "weather"
)

// ParseCategory parses a category string.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryIrrigation, CategoryFertilizer, CategoryPest, CategoryWeather:
		return Category(s), true
	}
	return "", false
}

// Priority indicates how urgently an alert needs attention.
type Priority string

// Alert priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for display: lower rank sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Alert is a notification raised for a farm. Alerts are immutable once issued.
type Alert struct {
	ID             string
	FarmID         string
	Category       Category
	Priority       Priority
	Title          string
	Message        string
	ActionRequired bool
	CreatedAt      time.Time
}
