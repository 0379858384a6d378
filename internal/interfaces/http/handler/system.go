package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obzorweather/backend/internal/infrastructure/cache"
)

// Version is the service version reported by /health.
const Version = "1.0.0"

// landingPage is the HTML served at the root path.
const landingPage = `<html>
    <head>
        <title>Weather Trend API</title>
    </head>
    <body>
        <h1>Weather Trend API</h1>
        <p>API за анализ на тенденциите на времето с помощта на Claude AI</p>
        <p>Използвайте <a href="/weather-trend?location=Obzor,Bulgaria">/weather-trend?location=Obzor,Bulgaria</a> за получаване на анализ</p>
    </body>
</html>`

// SystemHandler serves the landing page and health probe.
type SystemHandler struct {
	BaseHandler
	model string
	cache cache.ReportCache
}

// NewSystemHandler creates a new SystemHandler. model is the analyzer
// model identifier echoed by /health.
func NewSystemHandler(model string, reportCache cache.ReportCache) *SystemHandler {
	return &SystemHandler{
		model: model,
		cache: reportCache,
	}
}

// Root handles GET / with a small HTML page describing the API.
func (h *SystemHandler) Root(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}

// HealthResponse is the unwrapped /health payload. The shape predates
// the response envelope and is kept as-is for probe compatibility.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Model   string `json:"model"`
	Cache   string `json:"cache"`
	Time    string `json:"time"`
}

// Health handles GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
		Model:   h.model,
		Cache:   h.cacheStatus(c.Request.Context()),
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// cacheStatus pings the report cache backend.
func (h *SystemHandler) cacheStatus(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.cache.Ping(pingCtx); err != nil {
		return "unavailable"
	}
	return "ok"
}
