package weatherapi

import "errors"

// Configuration validation errors.
var (
	ErrConfigMissingAPIKey = errors.New("weatherapi: api key is required")
)

// DefaultBaseURL is the production WeatherAPI.com endpoint. The upstream
// free tier serves plain HTTP, which is what the service has always used.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// Config holds WeatherAPI.com client settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Language       string
	TimeoutSeconds int
	// Timezone is the IANA zone used to compute "yesterday" for history
	// queries. Defaults to the town the service narrates.
	Timezone string
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Language == "" {
		c.Language = "bg"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Sofia"
	}
	return nil
}
