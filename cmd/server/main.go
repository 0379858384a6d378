package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/obzorweather/backend/internal/application/trend"
	"github.com/obzorweather/backend/internal/infrastructure/anthropic"
	"github.com/obzorweather/backend/internal/infrastructure/cache"
	"github.com/obzorweather/backend/internal/infrastructure/config"
	"github.com/obzorweather/backend/internal/infrastructure/huggingface"
	"github.com/obzorweather/backend/internal/infrastructure/logger"
	"github.com/obzorweather/backend/internal/infrastructure/telemetry"
	"github.com/obzorweather/backend/internal/infrastructure/weatherapi"
	"github.com/obzorweather/backend/internal/infrastructure/webcam"
	"github.com/obzorweather/backend/internal/interfaces/http/handler"
	"github.com/obzorweather/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.NewFromSettings(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting weather trend service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry: tracer, meter, continuous profiler
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilingEnabled,
		ServerAddress:       cfg.Telemetry.ProfilingEndpoint,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Span profiles link traces to profiles; requires a running profiler.
	if cfg.Telemetry.ProfilingEnabled && cfg.Telemetry.Enabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Report cache
	cacheFactory := cache.NewFactory(cache.RedisConfig{
		Host:     cfg.Cache.Redis.Host,
		Port:     cfg.Cache.Redis.Port,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	}, cache.WithLogger(log))
	reportCache, err := cacheFactory.Create(cfg.Cache.Backend)
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()
	log.Info("Report cache ready", zap.String("backend", cfg.Cache.Backend))

	// Upstream clients. Missing keys are logged loudly but do not prevent
	// startup; affected requests fail or degrade at serve time instead.
	provider := newWeatherProvider(cfg, log)
	analyzer := newAnalyzer(cfg, log)

	observer, err := webcam.NewObserver(&webcam.Config{
		StreamURL:      cfg.Webcam.StreamURL,
		TimeoutSeconds: cfg.Webcam.TimeoutSeconds,
		Timezone:       cfg.Webcam.Timezone,
	})
	if err != nil {
		log.Fatal("Failed to create webcam observer", zap.Error(err))
	}

	// Trend service
	serviceOpts := []trend.ServiceOption{trend.WithLogger(log)}
	if meterProvider.IsEnabled() {
		reportMetrics, err := telemetry.NewReportMetrics(telemetry.ReportMetricsConfig{
			Meter:  meterProvider.Meter("trend.report"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to create report metrics", zap.Error(err))
		}
		serviceOpts = append(serviceOpts, trend.WithMetrics(reportMetrics))
	}

	trendService := trend.NewService(provider, observer, analyzer, reportCache, trend.ServiceConfig{
		DefaultLocation: cfg.Weather.DefaultLocation,
		ForecastDays:    cfg.Weather.ForecastDays,
		CacheTTL:        cfg.Cache.TTL,
	}, serviceOpts...)

	// Background cache warmer
	if cfg.Refresher.Enabled {
		refresher := trend.NewRefresher(trendService, cfg.Refresher.Interval, log)
		refresher.Start()
		defer refresher.Stop()
	}

	// HTTP layer
	engine := router.New(router.Config{
		Logger:           log,
		HTTP:             cfg.HTTP,
		Env:              cfg.App.Env,
		ServiceName:      cfg.Telemetry.ServiceName,
		MeterProvider:    meterProvider,
		TracingEnabled:   cfg.Telemetry.Enabled,
		MetricsEnabled:   cfg.Telemetry.MetricsEnabled,
		ProfilingEnabled: cfg.Telemetry.ProfilingEnabled,
		Trend:            handler.NewTrendHandler(trendService),
		System:           handler.NewSystemHandler(trendService.AnalyzerModel(), reportCache),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newWeatherProvider builds the WeatherAPI client, substituting the
// not-configured stand-in when the key is missing.
func newWeatherProvider(cfg *config.Config, log *zap.Logger) trend.WeatherProvider {
	client, err := weatherapi.NewClient(&weatherapi.Config{
		APIKey:         cfg.Weather.APIKey,
		BaseURL:        cfg.Weather.BaseURL,
		Language:       cfg.Weather.Language,
		Timezone:       cfg.Weather.Timezone,
		TimeoutSeconds: cfg.Weather.TimeoutSeconds,
	})
	if err != nil {
		log.Error("WeatherAPI client unavailable, trend requests will fail until a key is configured",
			zap.Error(err),
		)
		return trend.NotConfiguredProvider{}
	}
	return client
}

// newAnalyzer builds the analyzer selected by analyzer.provider. When the
// key is missing the stand-in is used and reports degrade to the canned
// narration.
func newAnalyzer(cfg *config.Config, log *zap.Logger) trend.Analyzer {
	switch cfg.Analyzer.Provider {
	case "huggingface":
		client, err := huggingface.NewClient(&huggingface.Config{
			APIKey:         cfg.HuggingFace.APIKey,
			BaseURL:        cfg.HuggingFace.BaseURL,
			Model:          cfg.HuggingFace.Model,
			TimeoutSeconds: cfg.HuggingFace.TimeoutSeconds,
		})
		if err != nil {
			log.Error("Hugging Face client unavailable, reports will use fallback narration",
				zap.Error(err),
			)
			model := cfg.HuggingFace.Model
			if model == "" {
				model = huggingface.DefaultModel
			}
			return trend.NewNotConfiguredAnalyzer("huggingface", model)
		}
		return trend.NewHuggingFaceAnalyzer(client)
	default:
		client, err := anthropic.NewClient(&anthropic.Config{
			APIKey:         cfg.Anthropic.APIKey,
			BaseURL:        cfg.Anthropic.BaseURL,
			Model:          cfg.Anthropic.Model,
			APIVersion:     cfg.Anthropic.APIVersion,
			MaxTokens:      cfg.Anthropic.MaxTokens,
			Temperature:    cfg.Anthropic.Temperature,
			TimeoutSeconds: cfg.Anthropic.TimeoutSeconds,
		})
		if err != nil {
			log.Error("Anthropic client unavailable, reports will use fallback narration",
				zap.Error(err),
			)
			model := cfg.Anthropic.Model
			if model == "" {
				model = anthropic.DefaultModel
			}
			return trend.NewNotConfiguredAnalyzer("anthropic", model)
		}
		return trend.NewAnthropicAnalyzer(client)
	}
}
