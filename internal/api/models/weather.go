package models

// WeatherCurrent is the current reading block of a weather response.
type WeatherCurrent struct {
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity"`
	Rainfall           float64 `json:"rainfall"`
	WindSpeed          int     `json:"windSpeed"`
	Pressure           float64 `json:"pressure"`
	UVIndex            int     `json:"uvIndex"`
	Evapotranspiration float64 `json:"evapotranspiration"`
	Condition          string  `json:"condition"`
}

// WeatherForecastDay is one daily entry of the 5-day forecast.
type WeatherForecastDay struct {
	Date      string  `json:"date"`
	MinTemp   int     `json:"minTemp"`
	MaxTemp   int     `json:"maxTemp"`
	Humidity  float64 `json:"humidity"`
	Rainfall  float64 `json:"rainfall"`
	WindSpeed int     `json:"windSpeed"`
	Pressure  float64 `json:"pressure"`
	Condition string  `json:"condition"`
}

// WeatherSnapshot is the normalized weather response for a location.
// Source is "live" or "fallback".
type WeatherSnapshot struct {
	Location  string               `json:"location"`
	Source    string               `json:"source"`
	Current   WeatherCurrent       `json:"current"`
	Forecast  []WeatherForecastDay `json:"forecast"`
	FetchedAt Timestamp            `json:"fetchedAt"`
}
