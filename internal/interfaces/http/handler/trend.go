package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obzorweather/backend/internal/application/trend"
	"github.com/obzorweather/backend/internal/interfaces/http/dto"
	"github.com/obzorweather/backend/internal/interfaces/http/middleware"
)

// TrendHandler serves the weather trend report.
type TrendHandler struct {
	BaseHandler
	service *trend.Service
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(service *trend.Service) *TrendHandler {
	return &TrendHandler{service: service}
}

// GetTrend handles GET /weather-trend. The location defaults to the town
// the service narrates, days to the configured forecast horizon, and
// refresh=true bypasses the report cache.
func (h *TrendHandler) GetTrend(c *gin.Context) {
	var req dto.TrendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	report, err := h.service.GetTrend(c.Request.Context(), trend.Query{
		Location: req.Location,
		Days:     req.Days,
		Refresh:  req.Refresh,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
