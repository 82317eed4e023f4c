package services

import (
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// LocationForm is the add/edit form for locations
type LocationForm = Form[entities.Location, ports.LocationForm]

// LocationService manages campus locations. Deleting a location never
// touches routes that name it.
type LocationService struct {
	*Controller[entities.Location]
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo ports.LocationRepository, notifier ports.Notifier, logger *logger.Logger) *LocationService {
	notices := Notices[entities.Location]{
		Created: func(l entities.Location) string {
			return fmt.Sprintf("New location '%s, %d' added", l.Building, l.Floor)
		},
		Updated: func(l entities.Location) string {
			return fmt.Sprintf("Location '%s' updated", l.Name)
		},
		Deleted: func(l entities.Location) string {
			return fmt.Sprintf("Location '%s' deleted", l.Name)
		},
	}

	return &LocationService{
		Controller: NewController[entities.Location]("location", locationRepo, notifier, notices, logger),
	}
}

// NewForm returns an Idle location form
func (s *LocationService) NewForm() *LocationForm {
	return NewForm(s.Controller, ports.NewLocationForm)
}
