// Package yield forecasts harvest outcomes from farm and weather inputs.
package yield

// FactorScores are 0-100 diagnostic ratings of each contributor to a
// prediction. They feed the UI's breakdown view and are independent of the
// overall confidence.
type FactorScores struct {
	Weather    int
	Soil       int
	Irrigation int
	Fertilizer int
}

// Comparison holds baseline yields the prediction is judged against, in
// tonnes per acre.
type Comparison struct {
	LastSeason      float64
	DistrictAverage float64
	StateAverage    float64
}

// RelativeChange returns the predicted change versus last season as a
// fraction. ok is false when there is no last-season baseline; callers must
// report "no baseline" instead of dividing by zero.
func (c Comparison) RelativeChange(predicted float64) (float64, bool) {
	if c.LastSeason == 0 {
		return 0, false
	}
	return (predicted - c.LastSeason) / c.LastSeason, true
}

// Prediction is a recomputed-per-request yield forecast. Only the eventual
// feedback record captures ground truth; predictions are never persisted.
type Prediction struct {
	CropType       string
	PredictedYield float64
	Confidence     int
	Factors        FactorScores
	Comparison     Comparison
}
