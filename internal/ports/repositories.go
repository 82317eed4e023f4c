package ports

import (
	"context"

	"github.com/campusnav/core/internal/domain/entities"
)

// RecordStore defines load-all / save-all access to one entity kind's table.
// Implementations rewrite the whole table on every save.
type RecordStore[T any] interface {
	// LoadAll returns every record in file order. A missing table is empty.
	LoadAll(ctx context.Context) ([]T, error)
	// SaveAll replaces the whole table. It either fully succeeds or leaves
	// the previous table in place.
	SaveAll(ctx context.Context, records []T) error
	// Update runs one load -> mutate -> save cycle while holding the table's
	// lock. When fn returns an error nothing is saved.
	Update(ctx context.Context, fn func(records []T) ([]T, error)) error
}

// LocationRepository stores campus locations
type LocationRepository interface {
	RecordStore[entities.Location]
}

// RouteRepository stores routes between locations
type RouteRepository interface {
	RecordStore[entities.Route]
}

// UserRepository stores dashboard accounts
type UserRepository interface {
	RecordStore[entities.User]
}

// NotificationRepository stores notifications
type NotificationRepository interface {
	RecordStore[entities.Notification]
}

// DefaultRecipient asks a Notifier to address its configured default user
const DefaultRecipient = 0

// Notifier records a notification after a successful mutation
type Notifier interface {
	Notify(ctx context.Context, message string, userID int) error
}
