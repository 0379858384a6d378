package trend

import (
	"context"

	"github.com/obzorweather/backend/internal/infrastructure/anthropic"
	"github.com/obzorweather/backend/internal/infrastructure/huggingface"
)

// Analyzer produces the narrated commentary text from an assembled prompt.
// Implementations wrap a specific model provider.
type Analyzer interface {
	// Analyze sends the prompt and returns the raw reply text.
	Analyze(ctx context.Context, prompt string) (string, error)
	// Model reports the model identifier, surfaced via /health.
	Model() string
	// Name reports the provider name used in metrics and logs.
	Name() string
}

// AnthropicAnalyzer narrates trends through the Anthropic Messages API.
type AnthropicAnalyzer struct {
	client *anthropic.Client
}

// NewAnthropicAnalyzer creates an analyzer backed by the given client.
func NewAnthropicAnalyzer(client *anthropic.Client) *AnthropicAnalyzer {
	return &AnthropicAnalyzer{client: client}
}

// Analyze sends the full presenter prompt to the Messages API.
func (a *AnthropicAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	return a.client.Complete(ctx, prompt)
}

// Model reports the configured model identifier.
func (a *AnthropicAnalyzer) Model() string {
	return a.client.Model()
}

// Name reports the provider name.
func (a *AnthropicAnalyzer) Name() string {
	return "anthropic"
}

// HuggingFaceAnalyzer narrates trends through the Inference API
// summarization endpoint. The summarizer cannot follow instructions, so
// the reply is a condensed restatement of the weather text rather than a
// three-section commentary; ParseAnalysis still extracts what it can.
type HuggingFaceAnalyzer struct {
	client *huggingface.Client
}

// NewHuggingFaceAnalyzer creates an analyzer backed by the given client.
func NewHuggingFaceAnalyzer(client *huggingface.Client) *HuggingFaceAnalyzer {
	return &HuggingFaceAnalyzer{client: client}
}

// Analyze condenses the prompt through the summarization model.
func (a *HuggingFaceAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	return a.client.Summarize(ctx, prompt)
}

// Model reports the configured model identifier.
func (a *HuggingFaceAnalyzer) Model() string {
	return a.client.Model()
}

// Name reports the provider name.
func (a *HuggingFaceAnalyzer) Name() string {
	return "huggingface"
}
