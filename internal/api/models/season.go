package models

// SeasonAlternative is a lower-ranked crop option for the season.
type SeasonAlternative struct {
	Crop          string `json:"crop"`
	Profitability int    `json:"profitability"`
	MarketDemand  string `json:"marketDemand"`
}

// SeasonAdvice is a season planning recommendation for a location.
type SeasonAdvice struct {
	Season          string              `json:"season"`
	RecommendedCrop string              `json:"recommendedCrop"`
	Profitability   int                 `json:"profitability"`
	MarketDemand    string              `json:"marketDemand"`
	Reasoning       string              `json:"reasoning"`
	Alternatives    []SeasonAlternative `json:"alternatives"`
}
