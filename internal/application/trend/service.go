// Package trend implements the weather trend report use case: fetch
// yesterday's observations, the short-range forecast and a webcam probe,
// narrate them through an analyzer model, and cache the rendered report.
package trend

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domaintrend "github.com/obzorweather/backend/internal/domain/trend"
	"github.com/obzorweather/backend/internal/domain/weather"
	"github.com/obzorweather/backend/internal/infrastructure/cache"
	"github.com/obzorweather/backend/internal/infrastructure/logger"
	"github.com/obzorweather/backend/internal/infrastructure/telemetry"
	"github.com/obzorweather/backend/internal/infrastructure/webcam"
)

// Default query values, matching the service's public contract.
const (
	DefaultLocation     = "8250 Obzor, Bulgaria"
	DefaultForecastDays = 2
	MaxForecastDays     = 3
)

// WeatherProvider fetches historical and forecast data for a location.
type WeatherProvider interface {
	History(ctx context.Context, location string) (*weather.History, error)
	Forecast(ctx context.Context, location string, days int) (*weather.Forecast, error)
}

// VideoObserver probes the town webcam.
type VideoObserver interface {
	Observe(ctx context.Context) webcam.Observation
}

// Query identifies one trend report request.
type Query struct {
	Location string
	Days     int
	// Refresh bypasses the report cache when true.
	Refresh bool
}

// Report is the rendered trend report. The JSON keys are the service's
// public Bulgarian wire contract and must not change.
type Report struct {
	Location         string  `json:"местоположение"`
	Country          string  `json:"държава"`
	CurrentTempC     float64 `json:"текуща_температура"`
	CurrentCondition string  `json:"текущо_състояние"`
	VideoAnalysis    string  `json:"видео_анализ"`
	WeatherAnalysis  string  `json:"анализ_на_времето"`
	HumanInfluence   string  `json:"влияние_върху_хората"`
	SunnyDay         string  `json:"слънчев_ден"`
}

// ServiceConfig holds trend service settings.
type ServiceConfig struct {
	DefaultLocation string
	ForecastDays    int
	CacheTTL        time.Duration
}

// Service builds trend reports.
type Service struct {
	provider WeatherProvider
	observer VideoObserver
	analyzer Analyzer
	cache    cache.ReportCache
	metrics  *telemetry.ReportMetrics
	logger   *zap.Logger
	config   ServiceConfig
}

// ServiceOption is a functional option for configuring the service.
type ServiceOption func(*Service)

// WithMetrics attaches report metrics instruments.
func WithMetrics(metrics *telemetry.ReportMetrics) ServiceOption {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService creates a trend service.
func NewService(
	provider WeatherProvider,
	observer VideoObserver,
	analyzer Analyzer,
	reportCache cache.ReportCache,
	config ServiceConfig,
	opts ...ServiceOption,
) *Service {
	if config.DefaultLocation == "" {
		config.DefaultLocation = DefaultLocation
	}
	if config.ForecastDays <= 0 {
		config.ForecastDays = DefaultForecastDays
	}

	s := &Service{
		provider: provider,
		observer: observer,
		analyzer: analyzer,
		cache:    reportCache,
		logger:   zap.NewNop(),
		config:   config,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AnalyzerModel reports the active analyzer's model identifier.
func (s *Service) AnalyzerModel() string {
	if s.analyzer == nil {
		return ""
	}
	return s.analyzer.Model()
}

// GetTrend returns the trend report for the query, serving from cache
// when a fresh entry exists. History or forecast failure fails the
// request; webcam and analyzer failures degrade into canned narration.
func (s *Service) GetTrend(ctx context.Context, query Query) (*Report, error) {
	query = s.normalize(query)

	ctx, span := telemetry.StartServiceSpan(ctx, "trend", "GetTrend",
		telemetry.WithAttribute(telemetry.SpanAttrLocation, query.Location),
		telemetry.WithAttribute(telemetry.SpanAttrForecastDays, query.Days),
	)
	defer span.End()

	key := cache.ReportKey(query.Location, query.Days)

	if !query.Refresh {
		if report := s.lookupCache(ctx, key); report != nil {
			telemetry.SetAttribute(span, telemetry.SpanAttrCacheResult, "hit")
			if s.metrics != nil {
				s.metrics.RecordReportRequest(ctx, query.Location, telemetry.CacheHit)
			}
			return report, nil
		}
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCacheResult, "miss")
	if s.metrics != nil {
		s.metrics.RecordReportRequest(ctx, query.Location, telemetry.CacheMiss)
	}

	start := time.Now()
	report, err := s.buildReport(ctx, query)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordReportBuild(ctx, query.Location, time.Since(start))
	}

	s.storeCache(ctx, key, report)
	telemetry.SetOK(span)
	return report, nil
}

// normalize applies defaults and clamps the forecast horizon.
func (s *Service) normalize(query Query) Query {
	if query.Location == "" {
		query.Location = s.config.DefaultLocation
	}
	if query.Days <= 0 {
		query.Days = s.config.ForecastDays
	}
	if query.Days > MaxForecastDays {
		query.Days = MaxForecastDays
	}
	return query
}

// buildReport fetches the upstream data and assembles the narrated report.
func (s *Service) buildReport(ctx context.Context, query Query) (*Report, error) {
	log := logger.WithLogger(ctx, s.logger)

	var (
		history     *weather.History
		forecast    *weather.Forecast
		observation webcam.Observation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.fetchHistory(gctx, query.Location)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = s.fetchForecast(gctx, query.Location, query.Days)
		return err
	})
	g.Go(func() error {
		observation = s.observer.Observe(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("trend report upstream fetch failed",
			zap.String("location", query.Location),
			zap.Error(err),
		)
		return nil, err
	}

	prompt := BuildPrompt(
		observation.Text,
		weather.FormatHistory(history),
		weather.FormatForecast(forecast),
	)

	analysis := s.analyze(ctx, prompt)

	return &Report{
		Location:         valueOr(forecast.Location.Name, "Неизвестно"),
		Country:          valueOr(forecast.Location.Country, "Неизвестно"),
		CurrentTempC:     forecast.Current.TempC,
		CurrentCondition: valueOr(forecast.Current.Condition.Text, "Неизвестно"),
		VideoAnalysis:    observation.Text,
		WeatherAnalysis:  analysis.Analysis,
		HumanInfluence:   analysis.Influence,
		SunnyDay:         analysis.SunnyDay,
	}, nil
}

// analyze runs the analyzer and degrades to the canned fallback on any
// failure. Analyzer failure is never a request failure.
func (s *Service) analyze(ctx context.Context, prompt string) domaintrend.Analysis {
	ctx, span := telemetry.StartServiceSpan(ctx, "trend", "Analyze",
		telemetry.WithAttribute(telemetry.SpanAttrAnalyzer, s.analyzer.Name()),
		telemetry.WithAttribute(telemetry.SpanAttrModel, s.analyzer.Model()),
	)
	defer span.End()

	start := time.Now()
	reply, err := s.analyzer.Analyze(ctx, prompt)
	if s.metrics != nil {
		result := telemetry.UpstreamSuccess
		if err != nil {
			result = telemetry.UpstreamFailure
		}
		s.metrics.RecordUpstreamCall(ctx, s.analyzer.Name(), result, time.Since(start))
	}
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("analyzer failed, using fallback narration",
			zap.String("analyzer", s.analyzer.Name()),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		telemetry.AddEvent(span, "analyzer_fallback")
		if s.metrics != nil {
			s.metrics.RecordAnalyzerFallback(ctx, s.analyzer.Name())
		}
		return domaintrend.FallbackAnalysis()
	}

	telemetry.SetOK(span)
	return domaintrend.ParseAnalysis(reply)
}

// fetchHistory wraps the provider call with upstream metrics.
func (s *Service) fetchHistory(ctx context.Context, location string) (*weather.History, error) {
	start := time.Now()
	history, err := s.provider.History(ctx, location)
	s.recordUpstream(ctx, "weatherapi_history", err, time.Since(start))
	return history, err
}

// fetchForecast wraps the provider call with upstream metrics.
func (s *Service) fetchForecast(ctx context.Context, location string, days int) (*weather.Forecast, error) {
	start := time.Now()
	forecast, err := s.provider.Forecast(ctx, location, days)
	s.recordUpstream(ctx, "weatherapi_forecast", err, time.Since(start))
	return forecast, err
}

func (s *Service) recordUpstream(ctx context.Context, upstream string, err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	result := telemetry.UpstreamSuccess
	if err != nil {
		result = telemetry.UpstreamFailure
	}
	s.metrics.RecordUpstreamCall(ctx, upstream, result, elapsed)
}

// lookupCache returns the cached report for key, or nil.
func (s *Service) lookupCache(ctx context.Context, key string) *Report {
	if s.cache == nil {
		return nil
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("report cache lookup failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return nil
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("discarding malformed cached report",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return &report
}

// storeCache saves the report. Cache failures are logged, never surfaced.
func (s *Service) storeCache(ctx context.Context, key string, report *Report) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.config.CacheTTL); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("report cache store failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
