package services

import (
	"context"
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// Notices builds the notification message for each kind of mutation. A nil
// func sends nothing for that mutation.
type Notices[T any] struct {
	Created func(T) string
	Updated func(T) string
	Deleted func(T) string
}

// PrepareFunc turns a submitted record into the record to store. existing is
// nil on create.
type PrepareFunc[T any] func(existing *T, incoming T) (T, error)

// CheckFunc vets a prepared record against the other stored records. It
// runs under the store's lock.
type CheckFunc[T any] func(all []T, rec T) error

// Controller runs load -> mutate -> save -> notify cycles for one entity kind
type Controller[T entities.Record[T]] struct {
	kind     string
	store    ports.RecordStore[T]
	notifier ports.Notifier
	notices  Notices[T]
	prepare  PrepareFunc[T]
	check    CheckFunc[T]
	logger   *logger.Logger
}

// NewController creates a controller. notifier may be nil.
func NewController[T entities.Record[T]](kind string, store ports.RecordStore[T], notifier ports.Notifier, notices Notices[T], logger *logger.Logger) *Controller[T] {
	return &Controller[T]{
		kind:     kind,
		store:    store,
		notifier: notifier,
		notices:  notices,
		logger:   logger.WithComponent(kind + "_controller"),
	}
}

// Kind names the entity kind the controller manages
func (c *Controller[T]) Kind() string {
	return c.kind
}

// List returns the records matching filter in file order
func (c *Controller[T]) List(ctx context.Context, filter ports.ListFilter) ([]T, error) {
	records, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", c.kind, err)
	}
	return ApplyFilter(records, filter)
}

// Get returns the record with the given id
func (c *Controller[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T

	records, err := c.store.LoadAll(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to load %ss: %w", c.kind, err)
	}

	idx := entities.IndexOf(records, id)
	if idx < 0 {
		return zero, c.notFound(id)
	}
	return records[idx], nil
}

// Create assigns the next id, appends the record and notifies
func (c *Controller[T]) Create(ctx context.Context, incoming T) (T, error) {
	var zero T

	rec, err := c.prepareRecord(nil, incoming)
	if err != nil {
		return zero, err
	}

	err = c.store.Update(ctx, func(all []T) ([]T, error) {
		rec = rec.WithRecordID(entities.NextID(all))
		if err := c.checkRecord(all, rec); err != nil {
			return nil, err
		}
		return append(all, rec), nil
	})
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", c.kind, err)
	}

	c.logger.Infow(c.kind+" created", "id", rec.RecordID())
	c.notify(ctx, c.notices.Created, rec)

	return rec, nil
}

// Update overwrites the record with the given id in place
func (c *Controller[T]) Update(ctx context.Context, id int, incoming T) (T, error) {
	var zero T
	var rec T

	err := c.store.Update(ctx, func(all []T) ([]T, error) {
		idx := entities.IndexOf(all, id)
		if idx < 0 {
			return nil, c.notFound(id)
		}

		prepared, err := c.prepareRecord(&all[idx], incoming.WithRecordID(id))
		if err != nil {
			return nil, err
		}
		rec = prepared.WithRecordID(id)
		if err := c.checkRecord(all, rec); err != nil {
			return nil, err
		}
		all[idx] = rec
		return all, nil
	})
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", c.kind, err)
	}

	c.logger.Infow(c.kind+" updated", "id", id)
	c.notify(ctx, c.notices.Updated, rec)

	return rec, nil
}

// Delete removes the record with the given id and returns it
func (c *Controller[T]) Delete(ctx context.Context, id int) (T, error) {
	var zero T
	var removed T

	err := c.store.Update(ctx, func(all []T) ([]T, error) {
		idx := entities.IndexOf(all, id)
		if idx < 0 {
			return nil, c.notFound(id)
		}
		removed = all[idx]
		return append(all[:idx], all[idx+1:]...), nil
	})
	if err != nil {
		return zero, fmt.Errorf("failed to delete %s: %w", c.kind, err)
	}

	c.logger.Infow(c.kind+" deleted", "id", id)
	c.notify(ctx, c.notices.Deleted, removed)

	return removed, nil
}

func (c *Controller[T]) prepareRecord(existing *T, incoming T) (T, error) {
	rec := incoming
	if c.prepare != nil {
		var err error
		rec, err = c.prepare(existing, incoming)
		if err != nil {
			return rec, err
		}
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func (c *Controller[T]) checkRecord(all []T, rec T) error {
	if c.check == nil {
		return nil
	}
	return c.check(all, rec)
}

// notify is best effort: failures are logged and never returned
func (c *Controller[T]) notify(ctx context.Context, message func(T) string, rec T) {
	if c.notifier == nil || message == nil {
		return
	}
	if err := c.notifier.Notify(ctx, message(rec), ports.DefaultRecipient); err != nil {
		c.logger.Warnw("Failed to send notification", "id", rec.RecordID(), "error", err)
	}
}

func (c *Controller[T]) notFound(id int) error {
	return fmt.Errorf("%s %d: %w", c.kind, id, entities.ErrNotFound)
}
