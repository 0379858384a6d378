// Package weatherapi implements the WeatherAPI.com client used for
// historical observations and short-range forecasts.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/obzorweather/backend/internal/domain/shared"
	"github.com/obzorweather/backend/internal/domain/weather"
)

// maxResponseSize bounds upstream response bodies to prevent memory
// exhaustion on a misbehaving provider.
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// Client talks to WeatherAPI.com.
type Client struct {
	config     *Config
	httpClient *http.Client
	zone       *time.Location
	now        func() time.Time
}

// NewClient creates a WeatherAPI.com client with the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	zone, err := time.LoadLocation(config.Timezone)
	if err != nil {
		zone = time.Local
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		zone: zone,
		now:  time.Now,
	}, nil
}

// History fetches yesterday's observed weather for the location.
func (c *Client) History(ctx context.Context, location string) (*weather.History, error) {
	yesterday := c.now().In(c.zone).AddDate(0, 0, -1).Format("2006-01-02")

	query := url.Values{}
	query.Set("key", c.config.APIKey)
	query.Set("q", location)
	query.Set("dt", yesterday)
	query.Set("lang", c.config.Language)

	var history weather.History
	if err := c.get(ctx, "/history.json", query, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// Forecast fetches the current conditions plus a days-long forecast for
// the location.
func (c *Client) Forecast(ctx context.Context, location string, days int) (*weather.Forecast, error) {
	if days < 1 {
		days = 1
	}

	query := url.Values{}
	query.Set("key", c.config.APIKey)
	query.Set("q", location)
	query.Set("days", strconv.Itoa(days))
	query.Set("lang", c.config.Language)

	var forecast weather.Forecast
	if err := c.get(ctx, "/forecast.json", query, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// get performs a GET request against the provider and decodes the JSON
// response into target. Non-200 answers map to the upstream domain error.
func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	reqURL := c.config.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("weatherapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.NewDomainError(shared.ErrUpstream.Code,
			fmt.Sprintf("weatherapi request failed: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("weatherapi: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return shared.NewDomainError(shared.ErrUpstream.Code,
			fmt.Sprintf("weatherapi returned status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return shared.NewDomainError(shared.ErrUpstream.Code,
			fmt.Sprintf("weatherapi returned malformed response: %v", err))
	}
	return nil
}
