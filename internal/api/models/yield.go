package models

// YieldFactors are 0-100 ratings of each contributor to a prediction.
type YieldFactors struct {
	Weather    int `json:"weather"`
	Soil       int `json:"soil"`
	Irrigation int `json:"irrigation"`
	Fertilizer int `json:"fertilizer"`
}

// YieldComparison holds baseline yields in tonnes per acre.
// RelativeChangePct is omitted when there is no last-season baseline.
type YieldComparison struct {
	LastSeason        float64  `json:"lastSeason"`
	DistrictAverage   float64  `json:"districtAverage"`
	StateAverage      float64  `json:"stateAverage"`
	RelativeChangePct *float64 `json:"relativeChangePct,omitempty"`
}

// YieldPrediction is a per-request yield forecast for a farm.
type YieldPrediction struct {
	CropType       string          `json:"cropType"`
	PredictedYield float64         `json:"predictedYield"`
	Unit           string          `json:"unit"`
	Confidence     int             `json:"confidence"`
	Factors        YieldFactors    `json:"factors"`
	Comparison     YieldComparison `json:"comparison"`
}
