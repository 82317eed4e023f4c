package services

import (
	"context"
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// NotificationForm is the add/edit form for notifications
type NotificationForm = Form[entities.Notification, ports.NotificationForm]

// NotificationService manages notifications. Its own mutations are not
// announced.
type NotificationService struct {
	*Controller[entities.Notification]
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo ports.NotificationRepository, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		Controller: NewController[entities.Notification]("notification", notificationRepo, nil, Notices[entities.Notification]{}, logger),
	}
}

// NewForm returns an Idle notification form
func (s *NotificationService) NewForm() *NotificationForm {
	return NewForm(s.Controller, ports.NewNotificationForm)
}

// Mine lists the notifications addressed to userID, narrowed by filter
func (s *NotificationService) Mine(ctx context.Context, userID int, filter ports.ListFilter) ([]entities.Notification, error) {
	all, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	mine := make([]entities.Notification, 0, len(all))
	for _, n := range all {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	return mine, nil
}

// MarkDelivered sets delivered on one of userID's notifications
func (s *NotificationService) MarkDelivered(ctx context.Context, userID, id int) (entities.Notification, error) {
	var marked entities.Notification

	err := s.store.Update(ctx, func(all []entities.Notification) ([]entities.Notification, error) {
		idx := entities.IndexOf(all, id)
		if idx < 0 || all[idx].UserID != userID {
			return nil, s.notFound(id)
		}
		all[idx].Delivered = true
		marked = all[idx]
		return all, nil
	})
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to mark notification delivered: %w", err)
	}
	return marked, nil
}
