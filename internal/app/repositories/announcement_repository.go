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

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	coll *mongo.Collection
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(m *db.Mongo) *AnnouncementRepository {
	return &AnnouncementRepository{coll: m.Collection(db.CollAnnouncements)}
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	res, err := r.coll.InsertOne(ctx, announcement)
	if err != nil {
		return fmt.Errorf("inserting announcement: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = oid
	}
	return nil
}

// GetByID finds an announcement by its object id.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var announcement models.Announcement
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&announcement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding announcement: %w", err)
	}
	return &announcement, nil
}

// List returns a page of announcements, important ones first and then
// newest first.
func (r *AnnouncementRepository) List(ctx context.Context, skip, limit int64) ([]models.Announcement, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("counting announcements: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "important", Value: -1}, {Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, 0, fmt.Errorf("decoding announcements: %w", err)
	}
	return announcements, total, nil
}

// ListRecent returns the newest announcements regardless of importance,
// used for dashboard summaries.
func (r *AnnouncementRepository) ListRecent(ctx context.Context, limit int64) ([]models.Announcement, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing recent announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("decoding announcements: %w", err)
	}
	return announcements, nil
}

// Search finds announcements whose title or content match the query,
// case-insensitively, newest first.
func (r *AnnouncementRepository) Search(ctx context.Context, query string, limit int64) ([]models.Announcement, error) {
	filter := bson.M{"$or": []bson.M{
		{"title": bson.M{"$regex": query, "$options": "i"}},
		{"content": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("searching announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("decoding announcements: %w", err)
	}
	return announcements, nil
}

// Delete removes an announcement document.
func (r *AnnouncementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
