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

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(m *db.Mongo) *MessageRepository {
	return &MessageRepository{coll: m.Collection(db.CollMessages)}
}

// Create inserts a new message.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	res, err := r.coll.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

// GetByID finds a message by its object id.
func (r *MessageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var message models.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("finding message: %w", err)
	}
	return &message, nil
}

// ListFor returns a page of messages the student sent or received, newest
// first.
func (r *MessageRepository) ListFor(ctx context.Context, studentID string, skip, limit int64) ([]models.Message, int64, error) {
	return r.list(ctx, bson.M{"$or": []bson.M{
		{"sender_id": studentID},
		{"recipient_id": studentID},
	}}, skip, limit)
}

// ListInbox returns a page of messages received by the student, newest
// first.
func (r *MessageRepository) ListInbox(ctx context.Context, recipientID string, skip, limit int64) ([]models.Message, int64, error) {
	return r.list(ctx, bson.M{"recipient_id": recipientID}, skip, limit)
}

// ListSent returns a page of messages sent by the student, newest first.
func (r *MessageRepository) ListSent(ctx context.Context, senderID string, skip, limit int64) ([]models.Message, int64, error) {
	return r.list(ctx, bson.M{"sender_id": senderID}, skip, limit)
}

func (r *MessageRepository) list(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Message, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("decoding messages: %w", err)
	}
	return messages, total, nil
}

// MarkRead flags a message as read, but only when the caller is its
// recipient.
func (r *MessageRepository) MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// Delete removes a message, but only when the caller sent or received it.
func (r *MessageRepository) Delete(ctx context.Context, id primitive.ObjectID, studentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "$or": []bson.M{
		{"sender_id": studentID},
		{"recipient_id": studentID},
	}})
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// CountUnread counts unread messages in a student's inbox.
func (r *MessageRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return count, nil
}
