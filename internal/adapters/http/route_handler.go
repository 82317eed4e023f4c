package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// RouteHandler serves the route finder
type RouteHandler struct {
	finder *services.RouteFinder
	logger *logger.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(finder *services.RouteFinder, logger *logger.Logger) *RouteHandler {
	return &RouteHandler{
		finder: finder,
		logger: logger,
	}
}

// Find godoc
// @Summary Find direct routes
// @Description List every route from start to end and the shortest one
// @Tags routes
// @Produce json
// @Param start query string true "Start location name"
// @Param end query string true "End location name"
// @Param accessible_only query bool false "Only accessible routes"
// @Success 200 {object} ports.RouteResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/find [get]
func (h *RouteHandler) Find(c echo.Context) error {
	var q ports.RouteQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	result, err := h.finder.Find(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Endpoints godoc
// @Summary Route endpoint names
// @Description Sorted names used as a route start or end
// @Tags routes
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /routes/endpoints [get]
func (h *RouteHandler) Endpoints(c echo.Context) error {
	names, err := h.finder.Endpoints(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, names)
}
