package models

// Me is the authenticated user's profile.
type Me struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Language  string    `json:"language"`
	Location  string    `json:"location,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// MeUpdateRequest is the request body for updating the profile.
// All fields are optional; only provided fields are applied.
type MeUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Language *string `json:"language,omitempty"`
	Location *string `json:"location,omitempty"`
}
