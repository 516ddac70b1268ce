package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Summary handles GET /v1/analytics/summary.
//
// @Summary      Dashboard metrics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AnalyticsSummary
// @Router       /v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	s, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
