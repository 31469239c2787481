package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/helpers"
	"github.com/savi/placement-portal/internal/pkg/websocket"
)

// NotificationService handles the per-user notification feed. Other
// services call Notify and Broadcast; there is no public creation endpoint.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	studentRepo      *repositories.StudentRepository
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. The hub may
// be nil, in which case events are stored but not streamed.
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	studentRepo *repositories.StudentRepository,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		studentRepo:      studentRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Notify records a notification for one recipient. Failures are logged and
// swallowed so a notification problem never fails the action it decorates.
func (s *NotificationService) Notify(ctx context.Context, recipientID, title, message, notificationType, relatedID string) {
	notification := &models.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        notificationType,
		RelatedID:   relatedID,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn().Err(err).Str("recipient", recipientID).Msg("Failed to create notification")
	}
	if s.hub != nil {
		s.hub.Publish(recipientID, &websocket.Event{
			Type:      notificationType,
			Title:     title,
			Message:   message,
			RelatedID: relatedID,
			Timestamp: notification.Timestamp,
		})
	}
}

// Broadcast records the same notification for every registered student.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, notificationType, relatedID string) {
	recipients, err := s.studentRepo.ListRegistrationNos(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list broadcast recipients")
		return
	}

	now := time.Now().UTC()
	notifications := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, models.Notification{
			RecipientID: recipient,
			Title:       title,
			Message:     message,
			Type:        notificationType,
			RelatedID:   relatedID,
			Timestamp:   now,
			Read:        false,
		})
	}
	if err := s.notificationRepo.CreateMany(ctx, notifications); err != nil {
		s.logger.Warn().Err(err).Int("recipients", len(recipients)).Msg("Failed to broadcast notification")
	}
	if s.hub != nil {
		s.hub.PublishAll(&websocket.Event{
			Type:      notificationType,
			Title:     title,
			Message:   message,
			RelatedID: relatedID,
			Timestamp: now,
		})
	}
}

// NotificationFeed is one page of a recipient's notifications plus counts.
type NotificationFeed struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	helpers.Pagination
}

// List returns a page of the recipient's notifications, newest first,
// optionally narrowed to read or unread entries.
func (s *NotificationService) List(ctx context.Context, recipientID string, read *bool, page, perPage int) (*NotificationFeed, error) {
	notifications, total, unread, err := s.notificationRepo.ListByRecipient(ctx, recipientID, read, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return &NotificationFeed{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    helpers.NewPagination(total, page, perPage),
	}, nil
}

// Get returns one notification and marks it read.
func (s *NotificationService) Get(ctx context.Context, recipientID, notificationID string) (*models.Notification, error) {
	oid, err := parseObjectID(notificationID)
	if err != nil {
		return nil, err
	}
	notification, err := s.notificationRepo.GetByID(ctx, oid, recipientID)
	if err != nil {
		return nil, err
	}
	if !notification.Read {
		if err := s.notificationRepo.MarkRead(ctx, oid, recipientID); err != nil {
			s.logger.Warn().Err(err).Str("notification", notificationID).Msg("Failed to mark notification read")
		} else {
			notification.Read = true
		}
	}
	return notification, nil
}

// UnreadCount returns how many unread notifications the recipient has.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead flags one notification as read for its recipient.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	oid, err := parseObjectID(notificationID)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, oid, recipientID)
}

// MarkAllRead flags every unread notification for the recipient.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
