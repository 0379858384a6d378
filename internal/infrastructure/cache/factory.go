package cache

import (
	"fmt"

	"go.uber.org/zap"
)

// Factory creates report caches based on configuration.
type Factory struct {
	redisConfig           RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory.
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new cache factory.
func NewFactory(cfg RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create builds a report cache for the requested backend ("redis" or
// "memory"). When Redis is requested but unreachable and fallback is
// allowed, the in-memory cache is returned instead.
func (f *Factory) Create(backend string) (ReportCache, error) {
	switch backend {
	case "redis":
		store, err := NewRedisReportCache(f.redisConfig)
		if err != nil {
			if !f.allowInMemoryFallback {
				return nil, fmt.Errorf("redis report cache unavailable: %w", err)
			}
			f.logger.Warn("Redis unavailable, falling back to in-memory report cache",
				zap.Error(err),
			)
			return NewInMemoryReportCache(), nil
		}
		return store, nil
	case "", "memory":
		return NewInMemoryReportCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
