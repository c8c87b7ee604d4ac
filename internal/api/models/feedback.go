package models

// FeedbackSubmitRequest is the request body for post-harvest feedback.
type FeedbackSubmitRequest struct {
	// ActualYield in tonnes per acre.
	ActualYield float64  `json:"actualYield"`
	Issues      []string `json:"issues,omitempty"`
	Rating      int      `json:"rating"`
	Comments    string   `json:"comments,omitempty"`
}

// Feedback is a recorded post-harvest feedback entry.
type Feedback struct {
	ID          string    `json:"id"`
	ActualYield float64   `json:"actualYield"`
	Issues      []string  `json:"issues"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// FeedbackList is the feedback history for a farm, most recent first.
type FeedbackList struct {
	Items []Feedback `json:"items"`
}
