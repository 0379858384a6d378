// Package huggingface implements the Inference API summarization client
// used as the alternate trend analyzer backend.
package huggingface

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
	ErrConfigMissingAPIKey = errors.New("huggingface: api key is required")
)

// ErrEmptyReply is returned when the API answers 200 with no summary.
var ErrEmptyReply = errors.New("huggingface: reply carried no summary")

// Defaults for the summarization backend.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "facebook/bart-large-cnn"
)

const maxResponseSize = 1 * 1024 * 1024 // 1MB

// Config holds Inference API client settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
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
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type summaryResult struct {
	SummaryText string `json:"summary_text"`
}

// Client talks to the Hugging Face Inference API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a Hugging Face client with the given configuration.
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

// Summarize condenses the given text through the configured model.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("huggingface: marshal request: %w", err)
	}

	url := c.config.BaseURL + "/models/" + c.config.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("huggingface: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface: returned status %d: %s", resp.StatusCode, respBody)
	}

	var results []summaryResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}

	for _, result := range results {
		if result.SummaryText != "" {
			return result.SummaryText, nil
		}
	}
	return "", ErrEmptyReply
}
