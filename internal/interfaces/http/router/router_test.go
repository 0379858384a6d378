package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/obzorweather/backend/internal/application/trend"
	"github.com/obzorweather/backend/internal/domain/weather"
	"github.com/obzorweather/backend/internal/infrastructure/config"
	"github.com/obzorweather/backend/internal/infrastructure/webcam"
	"github.com/obzorweather/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProvider struct{}

func (stubProvider) History(context.Context, string) (*weather.History, error) {
	return &weather.History{
		Location: weather.Location{Name: "Obzor", Country: "Bulgaria"},
		Forecast: weather.ForecastBlock{ForecastDay: []weather.ForecastDay{{Date: "2026-08-25"}}},
	}, nil
}

func (stubProvider) Forecast(context.Context, string, int) (*weather.Forecast, error) {
	return &weather.Forecast{
		Location: weather.Location{Name: "Obzor", Country: "Bulgaria"},
		Current:  weather.Current{TempC: 24, Condition: weather.Condition{Text: "Слънчево"}},
		Forecast: weather.ForecastBlock{ForecastDay: []weather.ForecastDay{{Date: "2026-08-26"}}},
	}, nil
}

type stubObserver struct{}

func (stubObserver) Observe(context.Context) webcam.Observation {
	return webcam.Observation{Text: "кадър", Reachable: true}
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string) (string, error) { return "анализ", nil }
func (stubAnalyzer) Model() string                                   { return "test-model" }
func (stubAnalyzer) Name() string                                    { return "test" }

func newTestEngine(t *testing.T, httpCfg config.HTTPConfig) http.Handler {
	t.Helper()

	svc := trend.NewService(stubProvider{}, stubObserver{}, stubAnalyzer{}, nil, trend.ServiceConfig{})
	return New(Config{
		Logger:      zap.NewNop(),
		HTTP:        httpCfg,
		ServiceName: "weather-trend",
		Trend:       handler.NewTrendHandler(svc),
		System:      handler.NewSystemHandler("test-model", nil),
	})
}

func TestNew_RegistersRoutes(t *testing.T) {
	engine := newTestEngine(t, config.HTTPConfig{})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/weather-trend", http.StatusOK},
		{"/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNew_SetsRequestID(t *testing.T) {
	engine := newTestEngine(t, config.HTTPConfig{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNew_SetsSecurityHeaders(t *testing.T) {
	engine := newTestEngine(t, config.HTTPConfig{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestNew_CORSPreflight(t *testing.T) {
	engine := newTestEngine(t, config.HTTPConfig{
		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "OPTIONS"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/weather-trend", nil)
	req.Header.Set("Origin", "https://obzorweather.com")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_RateLimit(t *testing.T) {
	engine := newTestEngine(t, config.HTTPConfig{
		RateLimitEnabled:  true,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
