package models

// Alert is an advisory alert raised for a farm.
type Alert struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ActionRequired bool      `json:"actionRequired"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// AlertList is the alert feed for a farm. Counts cover all of the farm's
// alerts regardless of any category filter applied to Items.
type AlertList struct {
	Items  []Alert        `json:"items"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
