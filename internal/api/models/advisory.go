package models

// IrrigationAdviceRequest is the request body for irrigation advice.
type IrrigationAdviceRequest struct {
	// LastIrrigationDate in YYYY-MM-DD format.
	LastIrrigationDate string `json:"lastIrrigationDate"`
}

// IrrigationAdvice is an irrigation recommendation for a farm.
type IrrigationAdvice struct {
	Recommendation    string  `json:"recommendation"`
	NextIrrigation    string  `json:"nextIrrigation"`
	IntervalDays      int     `json:"intervalDays"`
	WaterAmountLiters float64 `json:"waterAmountLiters"`
	Reasoning         string  `json:"reasoning"`
}

// FertilizerAdviceRequest is the request body for fertilizer advice.
type FertilizerAdviceRequest struct {
	CropStage string `json:"cropStage"`
}

// FertilizerAdvice is a fertilizer recommendation for a farm.
type FertilizerAdvice struct {
	Fertilizer        string  `json:"fertilizer"`
	QuantityKgPerAcre float64 `json:"quantityKgPerAcre"`
	Timing            string  `json:"timing"`
	Method            string  `json:"method"`
	Reasoning         string  `json:"reasoning"`
}

// PestDetectionRequest is the request body for pest detection. The image is
// base64-encoded and analyzed in memory only.
type PestDetectionRequest struct {
	Image string `json:"image"`
}

// PestDetection is the result of analyzing a crop image.
type PestDetection struct {
	Detected   bool   `json:"detected"`
	PestName   string `json:"pestName,omitempty"`
	Confidence int    `json:"confidence"`
	Severity   string `json:"severity,omitempty"`
	Badge      string `json:"badge,omitempty"`
	Treatment  string `json:"treatment,omitempty"`
}
