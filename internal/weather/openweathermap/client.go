package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/api/middleware"
	"github.com/agrivision/agrivision/internal/provider/resilience"
	"github.com/agrivision/agrivision/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// StatusError is returned for non-2xx provider responses. The proxy handler
// passes the provider's status code through to its own response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with forecast defaults.
	HTTPClient *resilience.Client

	// Registry tracks provider health for the status endpoint (optional).
	// If nil, uses resilience.GlobalRegistry.
	Registry *resilience.Registry

	// Metrics records request duration and outcome per call (optional).
	Metrics *middleware.ProviderMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap 5-day/3-hour forecast client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	registry   *resilience.Registry
	metrics    *middleware.ProviderMetrics
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	registry := cfg.Registry
	if registry == nil {
		registry = resilience.GlobalRegistry
	}
	registry.Register(ProviderName, httpClient)

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   registry,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchForecast fetches the 3-hourly series for a free-text location.
func (c *Client) FetchForecast(ctx context.Context, location string) (*weather.Series, error) {
	body, err := c.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	var owmResp forecastResponse
	if err := json.Unmarshal(body, &owmResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toSeries(location, &owmResp), nil
}

// FetchRaw fetches the provider's payload without reshaping it. Used by the
// proxy endpoint's raw pass-through mode.
func (c *Client) FetchRaw(ctx context.Context, location string) (json.RawMessage, error) {
	body, err := c.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, weather.ErrMissingLocation
	}

	start := time.Now()
	body, err := c.doFetch(ctx, location)
	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, "forecast", time.Since(start), err)
	}
	return body, err
}

func (c *Client) doFetch(ctx context.Context, location string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(location), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.registry.RecordFailure(ProviderName, err)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		c.registry.RecordFailure(ProviderName, statusErr)
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.registry.RecordFailure(ProviderName, err)
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.registry.RecordSuccess(ProviderName)
	return body, nil
}

// toSeries converts the OpenWeatherMap response to the domain series.
func (c *Client) toSeries(location string, resp *forecastResponse) *weather.Series {
	series := &weather.Series{
		Location: location,
		Steps:    make([]weather.Step, 0, len(resp.List)),
	}

	for _, item := range resp.List {
		step := weather.Step{
			Time:        time.Unix(item.Dt, 0),
			Temp:        item.Main.Temp,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeedMS: item.Wind.Speed,
		}

		// Rainfall is absent from the payload on dry windows.
		if item.Rain != nil {
			step.Rainfall3h = item.Rain.ThreeHour
		}

		if len(item.Weather) > 0 {
			step.Condition = item.Weather[0].Description
		}

		series.Steps = append(series.Steps, step)
	}

	return series
}

// OpenWeatherMap API response structures.

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Pressure float64 `json:"pressure"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Rain *struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain,omitempty"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}
