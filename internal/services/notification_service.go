package services

import (
	"context"
	"fmt"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/ecopulse-app/ecopulse/internal/realtime"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationStore is the storage surface for durable notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error
	ClearForUser(ctx context.Context, userID primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Publisher pushes an event to the sessions of a room, best-effort.
type Publisher interface {
	Publish(room, event string, payload interface{})
}

// NotificationService persists user notifications and mirrors each one
// onto the live channel. The durable copy is authoritative: if the
// recipient is offline the live push simply vanishes, and they see the
// record on their next fetch. Self-notification filtering is the
// caller's concern, not this service's.
type NotificationService struct {
	store     NotificationStore
	publisher Publisher
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(store NotificationStore, publisher Publisher) *NotificationService {
	return &NotificationService{store: store, publisher: publisher}
}

// Notify records a notification and pushes it to the recipient's
// personal room if they are connected.
func (s *NotificationService) Notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, data bson.M) error {
	notif := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.store.CreateNotification(ctx, notif); err != nil {
		return fmt.Errorf("failed to store notification: %v", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(realtime.UserRoom(userID.Hex()), "notification", notif)
	}
	return nil
}

// GetUserNotifications returns a user's notifications, newest first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}
	return s.store.GetUserNotifications(ctx, objID)
}

// MarkRead flips a single notification to read. Idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, notifID string) error {
	objID, err := primitive.ObjectIDFromHex(notifID)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %v", err)
	}
	return s.store.MarkAsRead(ctx, objID)
}

// MarkAllRead flips everything unread for the user. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}
	if err := s.store.MarkAllAsRead(ctx, objID); err != nil {
		return err
	}
	logrus.WithField("userID", userID).Info("All notifications marked read")
	return nil
}

// Clear removes all of the user's notifications. Idempotent.
func (s *NotificationService) Clear(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}
	return s.store.ClearForUser(ctx, objID)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %v", err)
	}
	return s.store.CountUnread(ctx, objID)
}
