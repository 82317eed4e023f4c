package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/infrastructure/logger"
)

// AnalyticsHandler serves report data
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Report godoc
// @Summary Analytics report
// @Description Location and route statistics
// @Tags analytics
// @Produce json
// @Success 200 {object} ports.AnalyticsReport
// @Security BearerAuth
// @Router /analytics [get]
func (h *AnalyticsHandler) Report(c echo.Context) error {
	report, err := h.analyticsService.Report(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
