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

// InterviewRepository handles database operations for interviews
type InterviewRepository struct {
	coll *mongo.Collection
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(m *db.Mongo) *InterviewRepository {
	return &InterviewRepository{coll: m.Collection(db.CollInterviews)}
}

// Create inserts a new interview.
func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	res, err := r.coll.InsertOne(ctx, interview)
	if err != nil {
		return fmt.Errorf("inserting interview: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		interview.ID = oid
	}
	return nil
}

// GetByID finds an interview by its object id.
func (r *InterviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Interview, error) {
	var interview models.Interview
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding interview: %w", err)
	}
	return &interview, nil
}

// ListByStudent returns a student's interviews, soonest first.
func (r *InterviewRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing interviews: %w", err)
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, fmt.Errorf("decoding interviews: %w", err)
	}
	return interviews, nil
}

// List returns a page of interviews matching the filter, soonest first.
func (r *InterviewRepository) List(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Interview, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting interviews: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing interviews: %w", err)
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, 0, fmt.Errorf("decoding interviews: %w", err)
	}
	return interviews, total, nil
}

// UpdateStatus transitions an interview to a new status.
func (r *InterviewRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("updating interview status: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountUpcoming counts a student's scheduled interviews.
func (r *InterviewRepository) CountUpcoming(ctx context.Context, studentID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"student_id": studentID,
		"status":     models.InterviewScheduled,
	})
	if err != nil {
		return 0, fmt.Errorf("counting interviews: %w", err)
	}
	return count, nil
}

// Delete removes an interview document.
func (r *InterviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting interview: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
