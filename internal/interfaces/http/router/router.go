// Package router assembles the gin engine: the middleware chain and the
// service's three public routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obzorweather/backend/internal/infrastructure/config"
	"github.com/obzorweather/backend/internal/infrastructure/logger"
	"github.com/obzorweather/backend/internal/infrastructure/telemetry"
	"github.com/obzorweather/backend/internal/interfaces/http/handler"
	"github.com/obzorweather/backend/internal/interfaces/http/middleware"
)

// maxBodyBytes caps request bodies. The API only serves GET requests,
// so anything beyond this is abuse.
const maxBodyBytes = 1 << 20

// Config holds the router's dependencies.
type Config struct {
	Logger *zap.Logger
	HTTP   config.HTTPConfig
	Env    string

	ServiceName      string
	MeterProvider    *telemetry.MeterProvider
	TracingEnabled   bool
	MetricsEnabled   bool
	ProfilingEnabled bool

	Trend  *handler.TrendHandler
	System *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain and routes:
//
//	GET /              landing page
//	GET /health        liveness probe
//	GET /weather-trend trend report
func New(cfg Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger, "/health"))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(maxBodyBytes))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: cfg.MeterProvider,
		ServiceName:   cfg.ServiceName,
		Enabled:       cfg.MetricsEnabled,
	}))

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = cfg.ProfilingEnabled
	engine.Use(middleware.ProfilingWithConfig(profiling))

	engine.GET("/", cfg.System.Root)
	engine.GET("/health", cfg.System.Health)
	engine.GET("/weather-trend", cfg.Trend.GetTrend)

	return engine
}

// corsConfig overlays configured CORS settings onto the defaults.
func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}
