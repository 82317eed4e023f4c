package services

import (
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// RouteForm is the add/edit form for routes
type RouteForm = Form[entities.Route, ports.RouteForm]

// RouteService manages routes. Start and end names are free text.
type RouteService struct {
	*Controller[entities.Route]
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo ports.RouteRepository, notifier ports.Notifier, logger *logger.Logger) *RouteService {
	notices := Notices[entities.Route]{
		Created: func(r entities.Route) string {
			return fmt.Sprintf("New route '%s' added", r.Label())
		},
		Updated: func(r entities.Route) string {
			return fmt.Sprintf("Route '%s' updated", r.Label())
		},
		Deleted: func(r entities.Route) string {
			return fmt.Sprintf("Route '%s' deleted", r.Label())
		},
	}

	return &RouteService{
		Controller: NewController[entities.Route]("route", routeRepo, notifier, notices, logger),
	}
}

// NewForm returns an Idle route form
func (s *RouteService) NewForm() *RouteForm {
	return NewForm(s.Controller, ports.NewRouteForm)
}
