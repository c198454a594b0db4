package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kjstillabower/weather-lookup/internal/models"
	"github.com/kjstillabower/weather-lookup/internal/observability"
)

// WeatherClient fetches current weather for a free-text place name.
type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, location string) (models.WeatherResult, error)
}

var (
	ErrInvalidAPIKey     = errors.New("invalid API key")
	ErrLocationNotFound  = errors.New("location not found")
	ErrUpstreamFailure   = errors.New("upstream failure")
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedResponse = errors.New("malformed response")
)

// DefaultAPIURL is the OpenWeatherMap current weather endpoint.
const DefaultAPIURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherClient calls the OpenWeatherMap current weather endpoint once per lookup.
// There is no retry: every failure is returned to the caller as-is.
type OpenWeatherClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewOpenWeatherClient returns a client for apiURL. A zero timeout means the
// request may wait for the upstream indefinitely.
func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	return &OpenWeatherClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// GetCurrentWeather performs one GET for location. The location is sent verbatim,
// including the empty string.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, location string) (models.WeatherResult, error) {
	start := time.Now()

	req, err := c.buildRequest(ctx, location)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return models.WeatherResult{}, fmt.Errorf("build request: %w", err)
	}

	if corrID := observability.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return models.WeatherResult{}, fmt.Errorf("request timeout: %w", err)
		}
		return models.WeatherResult{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err := handleErrorResponse(resp); err != nil {
		return models.WeatherResult{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherResult{}, fmt.Errorf("read response body: %w", err)
	}

	var apiResp openWeatherResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.WeatherResult{}, fmt.Errorf("%w: parse response: %v", ErrMalformedResponse, err)
	}

	return mapResponse(apiResp)
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, location string) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := baseURL.Query()
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

// handleErrorResponse classifies non-2xx responses. Callers collapse all of
// these into one user-facing outcome; the distinction only feeds metrics.
func handleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: HTTP %d", ErrInvalidAPIKey, resp.StatusCode)
	case http.StatusNotFound:
		return ErrLocationNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUpstreamFailure, resp.StatusCode)
	}
	return nil
}

// mapResponse projects the provider payload onto the displayed fields.
// A payload without weather[0] cannot be rendered and is rejected.
func mapResponse(apiResp openWeatherResponse) (models.WeatherResult, error) {
	if len(apiResp.Weather) == 0 {
		return models.WeatherResult{}, fmt.Errorf("%w: missing weather conditions", ErrMalformedResponse)
	}

	return models.WeatherResult{
		Name:        apiResp.Name,
		Temperature: apiResp.Main.Temp,
		Condition:   apiResp.Weather[0].Main,
		Description: apiResp.Weather[0].Description,
		Humidity:    apiResp.Main.Humidity,
		WindSpeed:   apiResp.Wind.Speed,
	}, nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
