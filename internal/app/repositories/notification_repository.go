package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	coll *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(m *db.Mongo) *NotificationRepository {
	return &NotificationRepository{coll: m.Collection(db.CollNotifications)}
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	res, err := r.coll.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}
	return nil
}

// CreateMany inserts a batch of notifications, used for broadcasts.
func (r *NotificationRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	docs := make([]interface{}, len(notifications))
	for i := range notifications {
		docs[i] = notifications[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("inserting notifications: %w", err)
	}
	return nil
}

// GetByID finds one notification scoped to its recipient.
func (r *NotificationRepository) GetByID(ctx context.Context, id primitive.ObjectID, recipientID string) (*models.Notification, error) {
	var notification models.Notification
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "recipient_id": recipientID}).Decode(&notification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("finding notification: %w", err)
	}
	return &notification, nil
}

// ListByRecipient returns a page of a recipient's notifications, newest
// first, together with their unread count. A non-nil read narrows the page
// to read or unread entries.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, read *bool, skip, limit int64) ([]models.Notification, int64, int64, error) {
	filter := bson.M{"recipient_id": recipientID}
	if read != nil {
		filter["read"] = *read
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("counting notifications: %w", err)
	}
	unread, err := r.coll.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("counting unread notifications: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("listing notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, 0, fmt.Errorf("decoding notifications: %w", err)
	}
	return notifications, total, unread, nil
}

// MarkRead flags one notification as read for its recipient.
func (r *NotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification for the recipient and
// returns how many were updated.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

// CountUnread counts a recipient's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}
