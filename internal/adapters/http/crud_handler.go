package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// CRUDHandler exposes one entity kind's controller. Every write goes
// through a fresh form: POST submits from Idle, PUT selects the record for
// editing first so omitted fields keep their stored values.
type CRUDHandler[T entities.Record[T], F ports.FormFields[T]] struct {
	controller *services.Controller[T]
	newForm    func() *services.Form[T, F]
	logger     *logger.Logger
}

// NewCRUDHandler creates a handler for one entity kind
func NewCRUDHandler[T entities.Record[T], F ports.FormFields[T]](controller *services.Controller[T], newForm func() *services.Form[T, F], logger *logger.Logger) *CRUDHandler[T, F] {
	return &CRUDHandler[T, F]{
		controller: controller,
		newForm:    newForm,
		logger:     logger.WithComponent(controller.Kind() + "_handler"),
	}
}

// Register mounts the five CRUD routes on g. write guards every mutation.
func (h *CRUDHandler[T, F]) Register(g *echo.Group, write ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.POST("", h.Create, write...)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update, write...)
	g.DELETE("/:id", h.Delete, write...)
}

// List returns records matching q and any boolean flag filters
func (h *CRUDHandler[T, F]) List(c echo.Context) error {
	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	records, err := h.controller.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListResponse[T]{Data: records, Total: len(records)})
}

// Get returns one record
func (h *CRUDHandler[T, F]) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rec, err := h.controller.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rec)
}

// Create submits an Idle form
func (h *CRUDHandler[T, F]) Create(c echo.Context) error {
	form := h.newForm()

	var fields F
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	rec, err := form.Submit(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	h.logAction(c, "create", rec.RecordID())
	return c.JSON(http.StatusCreated, rec)
}

// Update selects the record for editing, overlays the body and submits
func (h *CRUDHandler[T, F]) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	form := h.newForm()
	fields, err := form.SelectForEdit(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	rec, err := form.Submit(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	h.logAction(c, "update", id)
	return c.JSON(http.StatusOK, rec)
}

// Delete removes a record
func (h *CRUDHandler[T, F]) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := h.newForm().Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.logAction(c, "delete", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CRUDHandler[T, F]) logAction(c echo.Context, action string, id int) {
	userID := 0
	if claims := ClaimsFromContext(c); claims != nil {
		userID = claims.UserID
	}
	h.logger.LogUserAction(userID, h.controller.Kind()+"_"+action, map[string]interface{}{
		"record_id": id,
	})
}
