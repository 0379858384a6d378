package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Weather     WeatherConfig
	Analyzer    AnalyzerConfig
	Anthropic   AnthropicConfig
	HuggingFace HuggingFaceConfig
	Webcam      WebcamConfig
	Cache       CacheConfig
	Refresher   RefresherConfig
	Telemetry   TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// WeatherConfig holds WeatherAPI.com settings
type WeatherConfig struct {
	APIKey          string
	BaseURL         string
	Language        string
	Timezone        string
	DefaultLocation string
	ForecastDays    int
	TimeoutSeconds  int
}

// AnalyzerConfig selects the trend analyzer backend
type AnalyzerConfig struct {
	Provider string // anthropic, huggingface
}

// AnthropicConfig holds Anthropic Messages API settings
type AnthropicConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	APIVersion     string
	MaxTokens      int
	Temperature    float64
	TimeoutSeconds int
}

// HuggingFaceConfig holds Hugging Face Inference API settings
type HuggingFaceConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// WebcamConfig holds webcam stream probe settings
type WebcamConfig struct {
	StreamURL      string
	TimeoutSeconds int
	Timezone       string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig holds report cache settings
type CacheConfig struct {
	Backend string // memory, redis
	TTL     time.Duration
	Redis   RedisConfig
}

// RefresherConfig holds background cache warmer settings
type RefresherConfig struct {
	Enabled  bool
	Interval time.Duration
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTLP Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces and metrics
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool    // Export HTTP metrics through OTLP
	ProfilingEnabled  bool    // Continuous profiling via Pyroscope
	ProfilingEndpoint string  // Pyroscope server address
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with OBZOR_ prefix (e.g., OBZOR_WEATHER_API_KEY)
// 2. Hosting platform secrets under their historical bare names
//    (WEATHER_API_KEY, ANTHROPIC_API_KEY, HUGGING_FACE_API_KEY)
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("OBZOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The hosting platform injects secrets under their bare historical
	// names, so bind those explicitly alongside the prefixed forms.
	_ = v.BindEnv("weather.api_key", "OBZOR_WEATHER_API_KEY", "WEATHER_API_KEY")
	_ = v.BindEnv("anthropic.api_key", "OBZOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("huggingface.api_key", "OBZOR_HUGGINGFACE_API_KEY", "HUGGING_FACE_API_KEY")

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Weather: WeatherConfig{
			APIKey:          v.GetString("weather.api_key"),
			BaseURL:         v.GetString("weather.base_url"),
			Language:        v.GetString("weather.language"),
			Timezone:        v.GetString("weather.timezone"),
			DefaultLocation: v.GetString("weather.default_location"),
			ForecastDays:    v.GetInt("weather.forecast_days"),
			TimeoutSeconds:  v.GetInt("weather.timeout_seconds"),
		},
		Analyzer: AnalyzerConfig{
			Provider: v.GetString("analyzer.provider"),
		},
		Anthropic: AnthropicConfig{
			APIKey:         v.GetString("anthropic.api_key"),
			BaseURL:        v.GetString("anthropic.base_url"),
			Model:          v.GetString("anthropic.model"),
			APIVersion:     v.GetString("anthropic.api_version"),
			MaxTokens:      v.GetInt("anthropic.max_tokens"),
			Temperature:    v.GetFloat64("anthropic.temperature"),
			TimeoutSeconds: v.GetInt("anthropic.timeout_seconds"),
		},
		HuggingFace: HuggingFaceConfig{
			APIKey:         v.GetString("huggingface.api_key"),
			BaseURL:        v.GetString("huggingface.base_url"),
			Model:          v.GetString("huggingface.model"),
			TimeoutSeconds: v.GetInt("huggingface.timeout_seconds"),
		},
		Webcam: WebcamConfig{
			StreamURL:      v.GetString("webcam.stream_url"),
			TimeoutSeconds: v.GetInt("webcam.timeout_seconds"),
			Timezone:       v.GetString("webcam.timezone"),
		},
		Cache: CacheConfig{
			Backend: v.GetString("cache.backend"),
			TTL:     v.GetDuration("cache.ttl"),
			Redis: RedisConfig{
				Host:     v.GetString("cache.redis.host"),
				Port:     v.GetInt("cache.redis.port"),
				Password: v.GetString("cache.redis.password"),
				DB:       v.GetInt("cache.redis.db"),
			},
		},
		Refresher: RefresherConfig{
			Enabled:  v.GetBool("refresher.enabled"),
			Interval: v.GetDuration("refresher.interval"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			ProfilingEndpoint: v.GetString("telemetry.profiling_endpoint"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "weather-trend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		// The hosting platform routes traffic to this port.
		cfg.App.Port = "7860"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Trend requests fan out to three upstreams plus the analyzer.
		cfg.HTTP.WriteTimeout = 90 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 30
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		// Public read-only API, called cross-origin by the site frontend.
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Weather.Language == "" {
		cfg.Weather.Language = "bg"
	}
	if cfg.Weather.Timezone == "" {
		cfg.Weather.Timezone = "Europe/Sofia"
	}
	if cfg.Weather.DefaultLocation == "" {
		cfg.Weather.DefaultLocation = "8250 Obzor, Bulgaria"
	}
	if cfg.Weather.ForecastDays == 0 {
		cfg.Weather.ForecastDays = 2
	}
	if cfg.Analyzer.Provider == "" {
		cfg.Analyzer.Provider = "anthropic"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}
	if cfg.Cache.Redis.Host == "" {
		cfg.Cache.Redis.Host = "localhost"
	}
	if cfg.Cache.Redis.Port == 0 {
		cfg.Cache.Redis.Port = 6379
	}
	if cfg.Refresher.Interval <= 0 {
		cfg.Refresher.Interval = 15 * time.Minute
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0 // 100% in development
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "weather-trend"
	}
	if cfg.Telemetry.ProfilingEndpoint == "" {
		cfg.Telemetry.ProfilingEndpoint = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Analyzer.Provider {
	case "anthropic", "huggingface":
	default:
		return fmt.Errorf("analyzer.provider must be 'anthropic' or 'huggingface', got %q", c.Analyzer.Provider)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got %q", c.Cache.Backend)
	}

	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > 3 {
		return fmt.Errorf("weather.forecast_days must be between 1 and 3, got %d", c.Weather.ForecastDays)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Weather.APIKey == "" {
			return fmt.Errorf("weather.api_key is required in production")
		}
		switch c.Analyzer.Provider {
		case "anthropic":
			if c.Anthropic.APIKey == "" {
				return fmt.Errorf("anthropic.api_key is required in production when analyzer.provider=anthropic")
			}
		case "huggingface":
			if c.HuggingFace.APIKey == "" {
				return fmt.Errorf("huggingface.api_key is required in production when analyzer.provider=huggingface")
			}
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}
