package trend

import (
	"context"

	"github.com/obzorweather/backend/internal/domain/shared"
	"github.com/obzorweather/backend/internal/domain/weather"
)

// NotConfiguredProvider stands in for the weather client when no API key
// is configured. The service still starts and serves the landing page and
// health probe; trend requests fail with the not-configured error.
type NotConfiguredProvider struct{}

func (NotConfiguredProvider) History(context.Context, string) (*weather.History, error) {
	return nil, shared.NewDomainError(shared.ErrNotConfigured.Code, "weather api key is not configured")
}

func (NotConfiguredProvider) Forecast(context.Context, string, int) (*weather.Forecast, error) {
	return nil, shared.NewDomainError(shared.ErrNotConfigured.Code, "weather api key is not configured")
}

// NotConfiguredAnalyzer stands in for the analyzer when its API key is
// missing. Analyzer failures degrade, so reports fall back to the canned
// narration instead of failing.
type NotConfiguredAnalyzer struct {
	name  string
	model string
}

// NewNotConfiguredAnalyzer creates the stand-in. name and model are
// echoed in spans and /health so the gap is visible.
func NewNotConfiguredAnalyzer(name, model string) *NotConfiguredAnalyzer {
	return &NotConfiguredAnalyzer{name: name, model: model}
}

func (a *NotConfiguredAnalyzer) Analyze(context.Context, string) (string, error) {
	return "", shared.NewDomainError(shared.ErrNotConfigured.Code, a.name+" api key is not configured")
}

func (a *NotConfiguredAnalyzer) Model() string { return a.model }

func (a *NotConfiguredAnalyzer) Name() string { return a.name }
