package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
)

// NotificationHandler serves the caller's own notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Mine godoc
// @Summary My notifications
// @Description Notifications addressed to the caller
// @Tags notifications
// @Produce json
// @Param q query string false "Search text"
// @Param delivered query bool false "Delivered flag"
// @Success 200 {object} ListResponse[entities.Notification]
// @Security BearerAuth
// @Router /notifications/mine [get]
func (h *NotificationHandler) Mine(c echo.Context) error {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing credentials")
	}

	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	mine, err := h.notificationService.Mine(c.Request().Context(), claims.UserID, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListResponse[entities.Notification]{Data: mine, Total: len(mine)})
}

// MarkDelivered godoc
// @Summary Mark one of my notifications delivered
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} entities.Notification
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/mine/{id}/delivered [put]
func (h *NotificationHandler) MarkDelivered(c echo.Context) error {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing credentials")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	n, err := h.notificationService.MarkDelivered(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return err
	}

	h.logger.WithUserID(claims.UserID).Infow("Notification marked delivered", "notification_id", id)

	return c.JSON(http.StatusOK, n)
}
