package models

// SoilHealth reports the measured soil nutrient scores for a farm.
// Nutrient scores are 0-100; pH follows the usual 0-14 scale.
type SoilHealth struct {
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
	PH         float64 `json:"ph"`
}

// Farm represents a farm profile.
type Farm struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Location         string     `json:"location"`
	SizeAcres        float64    `json:"sizeAcres"`
	CropType         string     `json:"cropType"`
	SowingDate       string     `json:"sowingDate"`
	IrrigationMethod string     `json:"irrigationMethod"`
	SoilHealth       SoilHealth `json:"soilHealth"`
	CreatedAt        Timestamp  `json:"createdAt"`
	UpdatedAt        Timestamp  `json:"updatedAt"`
}

// FarmCreateRequest is the request body for creating a farm.
type FarmCreateRequest struct {
	Name             string     `json:"name"`
	Location         string     `json:"location"`
	SizeAcres        float64    `json:"sizeAcres"`
	CropType         string     `json:"cropType"`
	SowingDate       string     `json:"sowingDate"`
	IrrigationMethod string     `json:"irrigationMethod"`
	SoilHealth       SoilHealth `json:"soilHealth"`
}

// FarmUpdateRequest is the request body for updating a farm.
// All fields are optional; only provided fields are applied.
type FarmUpdateRequest struct {
	Name             *string     `json:"name,omitempty"`
	Location         *string     `json:"location,omitempty"`
	SizeAcres        *float64    `json:"sizeAcres,omitempty"`
	CropType         *string     `json:"cropType,omitempty"`
	SowingDate       *string     `json:"sowingDate,omitempty"`
	IrrigationMethod *string     `json:"irrigationMethod,omitempty"`
	SoilHealth       *SoilHealth `json:"soilHealth,omitempty"`
}

// PagedFarms is a paginated list of farms.
type PagedFarms struct {
	Items []Farm            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
