// Package anthropic implements the minimal Messages API client the trend
// analyzer needs: send one user prompt, read back the first text block.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Configuration validation errors.
var (
	ErrConfigMissingAPIKey = errors.New("anthropic: api key is required")
)

// ErrEmptyReply is returned when the API answers 200 with no text content.
var ErrEmptyReply = errors.New("anthropic: reply carried no text content")

// Defaults mirror the service's long-standing analyzer settings.
const (
	DefaultBaseURL    = "https://api.anthropic.com"
	DefaultModel      = "claude-3-5-sonnet-20240620"
	DefaultAPIVersion = "2023-06-01"
	DefaultMaxTokens  = 300
)

const maxResponseSize = 1 * 1024 * 1024 // 1MB

// Config holds Messages API client settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	APIVersion     string
	MaxTokens      int
	Temperature    float64
	TimeoutSeconds int
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// Client talks to the Anthropic Messages API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates an Anthropic client with the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// Complete sends a single user prompt and returns the first text block of
// the reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload := messagesRequest{
		Model:       c.config.Model,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", c.config.APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("anthropic: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic: returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	for _, block := range parsed.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyReply
}
