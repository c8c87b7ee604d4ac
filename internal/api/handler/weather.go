package handler

import (
	"errors"
	"net/http"

	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/api/response"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/weather/openweathermap"
)

// WeatherHandler proxies forecast requests to the weather provider. Unlike
// the internal gateway it does not degrade to the fallback snapshot: clients
// of this endpoint see provider failures as-is.
type WeatherHandler struct {
	client *openweathermap.Client
	apiKey string
}

// NewWeatherHandler creates a new WeatherHandler. apiKey is the provider
// credential; an empty value makes every request fail with a 500 so the
// misconfiguration is visible instead of silently serving nothing.
func NewWeatherHandler(client *openweathermap.Client, apiKey string) *WeatherHandler {
	return &WeatherHandler{client: client, apiKey: apiKey}
}

// GetWeather handles GET /v1/weather?location=... - normalized forecast for
// a location. ?raw=true passes the provider payload through unshaped.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		response.BadRequest(w, r, "location query parameter is required", nil)
		return
	}

	if h.apiKey == "" {
		response.InternalError(w, r, "weather provider is not configured")
		return
	}

	if r.URL.Query().Get("raw") == "true" {
		raw, err := h.client.FetchRaw(r.Context(), location)
		if err != nil {
			h.writeProviderError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, raw)
		return
	}

	series, err := h.client.FetchForecast(r.Context(), location)
	if err != nil {
		h.writeProviderError(w, r, err)
		return
	}
	if len(series.Steps) == 0 {
		response.InternalError(w, r, "provider returned an empty forecast")
		return
	}

	snapshot := weather.Normalize(series)
	response.JSON(w, r, http.StatusOK, SnapshotToAPI(snapshot))
}

// writeProviderError passes the provider's status code through when the
// provider answered at all, and reports a gateway failure otherwise.
func (h *WeatherHandler) writeProviderError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *openweathermap.StatusError
	if errors.As(err, &statusErr) {
		problem := models.NewProblem(models.ProblemTypeInternal, "Weather Provider Error", statusErr.StatusCode, "").
			WithDetail("weather provider request failed")
		response.Error(w, r, problem)
		return
	}

	response.ServiceUnavailable(w, r, "weather provider is unreachable")
}

// SnapshotToAPI converts a weather snapshot to its API representation.
func SnapshotToAPI(s *weather.Snapshot) models.WeatherSnapshot {
	forecast := make([]models.WeatherForecastDay, 0, len(s.Forecast))
	for _, day := range s.Forecast {
		forecast = append(forecast, models.WeatherForecastDay{
			Date:      day.Date,
			MinTemp:   day.MinTemp,
			MaxTemp:   day.MaxTemp,
			Humidity:  day.Humidity,
			Rainfall:  day.Rainfall,
			WindSpeed: day.WindSpeed,
			Pressure:  day.Pressure,
			Condition: day.Condition,
		})
	}

	return models.WeatherSnapshot{
		Location: s.Location,
		Source:   string(s.Source),
		Current: models.WeatherCurrent{
			Temperature:        s.Current.Temperature,
			Humidity:           s.Current.Humidity,
			Rainfall:           s.Current.Rainfall,
			WindSpeed:          s.Current.WindSpeed,
			Pressure:           s.Current.Pressure,
			UVIndex:            s.Current.UVIndex,
			Evapotranspiration: s.Current.Evapotranspiration,
			Condition:          s.Current.Condition,
		},
		Forecast:  forecast,
		FetchedAt: models.Timestamp(s.FetchedAt),
	}
}
