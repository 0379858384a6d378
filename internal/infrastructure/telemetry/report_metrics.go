// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ReportMetrics tracks trend report generation and upstream API activity.
type ReportMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	reportRequestsTotal   *Counter
	upstreamRequestsTotal *Counter
	analyzerFallbackTotal *Counter

	// Histogram metrics (distributions)
	reportBuildDuration *Histogram
	upstreamDuration    *Histogram
}

// ReportMetricsConfig holds configuration for report metrics.
type ReportMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// CacheResult labels whether a report was served from cache.
type CacheResult string

const (
	CacheHit  CacheResult = "hit"
	CacheMiss CacheResult = "miss"
)

// UpstreamResult labels the outcome of an upstream API call.
type UpstreamResult string

const (
	UpstreamSuccess UpstreamResult = "success"
	UpstreamFailure UpstreamResult = "failure"
)

// NewReportMetrics creates a new ReportMetrics instance.
func NewReportMetrics(cfg ReportMetricsConfig) (*ReportMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &ReportMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	rm.reportRequestsTotal, err = NewCounter(
		cfg.Meter,
		"trend_report_requests_total",
		"Total number of trend report requests served",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	rm.upstreamRequestsTotal, err = NewCounter(
		cfg.Meter,
		"trend_upstream_requests_total",
		"Total number of upstream API calls",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	rm.analyzerFallbackTotal, err = NewCounter(
		cfg.Meter,
		"trend_analyzer_fallback_total",
		"Number of reports served with the canned analysis because the analyzer failed",
		"{reports}",
	)
	if err != nil {
		return nil, err
	}

	rm.reportBuildDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "trend_report_build_seconds",
		Description: "Time to assemble a full trend report, upstream calls included",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	rm.upstreamDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "trend_upstream_request_seconds",
		Description: "Duration of individual upstream API calls",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// RecordReportRequest records a served trend report and whether it came from cache.
func (rm *ReportMetrics) RecordReportRequest(ctx context.Context, location string, result CacheResult) {
	rm.reportRequestsTotal.Inc(ctx,
		AttrLocation.String(location),
		AttrCacheResult.String(string(result)),
	)
}

// RecordReportBuild records the time spent assembling a report that missed the cache.
func (rm *ReportMetrics) RecordReportBuild(ctx context.Context, location string, d time.Duration) {
	rm.reportBuildDuration.RecordDuration(ctx, d,
		AttrLocation.String(location),
	)
}

// RecordUpstreamCall records a single upstream API call with its outcome.
func (rm *ReportMetrics) RecordUpstreamCall(ctx context.Context, upstream string, result UpstreamResult, d time.Duration) {
	rm.upstreamRequestsTotal.Inc(ctx,
		AttrUpstream.String(upstream),
		AttrUpstreamResult.String(string(result)),
	)
	rm.upstreamDuration.RecordDuration(ctx, d,
		AttrUpstream.String(upstream),
	)
}

// RecordAnalyzerFallback records a report that degraded to the canned analysis.
func (rm *ReportMetrics) RecordAnalyzerFallback(ctx context.Context, analyzer string) {
	rm.analyzerFallbackTotal.Inc(ctx,
		AttrAnalyzer.String(analyzer),
	)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewReportMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
