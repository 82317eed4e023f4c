package repository

import (
	"strconv"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/storage"
	"github.com/campusnav/core/internal/ports"
)

var (
	LocationColumns     = []string{"id", "name", "building", "floor", "accessible"}
	RouteColumns        = []string{"id", "start_location", "end_location", "distance_m", "accessible"}
	NotificationColumns = []string{"id", "user_id", "message", "delivered"}
)

var locationSchema = tableSchema[entities.Location]{
	header:   LocationColumns,
	required: LocationColumns,
	decode: func(r *row) entities.Location {
		return entities.Location{
			ID:         r.Int("id"),
			Name:       r.Text("name"),
			Building:   r.Text("building"),
			Floor:      r.Int("floor"),
			Accessible: r.Bool("accessible"),
		}
	},
	encode: func(l entities.Location) []string {
		return []string{strconv.Itoa(l.ID), l.Name, l.Building, strconv.Itoa(l.Floor), entities.FormatBool(l.Accessible)}
	},
}

var routeSchema = tableSchema[entities.Route]{
	header:   RouteColumns,
	required: RouteColumns,
	decode: func(r *row) entities.Route {
		return entities.Route{
			ID:            r.Int("id"),
			StartLocation: r.Text("start_location"),
			EndLocation:   r.Text("end_location"),
			DistanceM:     r.Float("distance_m"),
			Accessible:    r.Bool("accessible"),
		}
	},
	encode: func(rt entities.Route) []string {
		return []string{strconv.Itoa(rt.ID), rt.StartLocation, rt.EndLocation, entities.FormatFloat(rt.DistanceM), entities.FormatBool(rt.Accessible)}
	},
}

var notificationSchema = tableSchema[entities.Notification]{
	header:   NotificationColumns,
	required: NotificationColumns,
	decode: func(r *row) entities.Notification {
		return entities.Notification{
			ID:        r.Int("id"),
			UserID:    r.Int("user_id"),
			Message:   r.Text("message"),
			Delivered: r.Bool("delivered"),
		}
	},
	encode: func(n entities.Notification) []string {
		return []string{strconv.Itoa(n.ID), strconv.Itoa(n.UserID), n.Message, entities.FormatBool(n.Delivered)}
	},
}

// NewLocationRepository creates the CSV-backed location store
func NewLocationRepository(dir *storage.DataDir, log *logger.Logger) ports.LocationRepository {
	return newCSVTable(dir, dir.Config().LocationsFile, locationSchema, log)
}

// NewRouteRepository creates the CSV-backed route store
func NewRouteRepository(dir *storage.DataDir, log *logger.Logger) ports.RouteRepository {
	return newCSVTable(dir, dir.Config().RoutesFile, routeSchema, log)
}

// NewNotificationRepository creates the CSV-backed notification store
func NewNotificationRepository(dir *storage.DataDir, log *logger.Logger) ports.NotificationRepository {
	return newCSVTable(dir, dir.Config().NotificationsFile, notificationSchema, log)
}
