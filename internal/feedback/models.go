// Package feedback records season outcomes reported by farmers.
package feedback

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// Feedback is a farmer's end-of-season report for a farm. Records are
// append-only and never updated by the advisory layer.
type Feedback struct {
	ID          string
	FarmID      string
	ActualYield float64
	Issues      []string
	Rating      int
	Comments    string
	CreatedAt   time.Time
}
