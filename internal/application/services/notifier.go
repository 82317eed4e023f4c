package services

import (
	"context"
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// NotificationObserver is told about every notification attempt
type NotificationObserver interface {
	ObserveNotification(err error)
}

// Notifier appends notifications to the notification store
type Notifier struct {
	notificationRepo ports.NotificationRepository
	config           config.NotifierConfig
	observer         NotificationObserver
	logger           *logger.Logger
}

// NewNotifier creates a notifier. observer may be nil.
func NewNotifier(notificationRepo ports.NotificationRepository, cfg config.NotifierConfig, observer NotificationObserver, logger *logger.Logger) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		config:           cfg,
		observer:         observer,
		logger:           logger.WithComponent("notifier"),
	}
}

// Notify appends one undelivered notification for userID. ports.DefaultRecipient
// addresses the configured default user.
func (n *Notifier) Notify(ctx context.Context, message string, userID int) error {
	if !n.config.Enabled {
		return nil
	}
	if userID == ports.DefaultRecipient {
		userID = n.config.DefaultUserID
	}

	var created entities.Notification
	err := n.notificationRepo.Update(ctx, func(all []entities.Notification) ([]entities.Notification, error) {
		created = entities.Notification{
			ID:        entities.NextID(all),
			UserID:    userID,
			Message:   message,
			Delivered: false,
		}
		if err := created.Validate(); err != nil {
			return nil, err
		}
		return append(all, created), nil
	})

	if n.observer != nil {
		n.observer.ObserveNotification(err)
	}
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}

	n.logger.Debugw("Notification appended", "notification_id", created.ID, "user_id", userID)
	return nil
}
