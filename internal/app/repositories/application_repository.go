package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	coll *mongo.Collection
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(m *db.Mongo) *ApplicationRepository {
	return &ApplicationRepository{coll: m.Collection(db.CollApplications)}
}

// Create inserts a new application. The unique (student_id, company_id)
// index makes a concurrent duplicate submission fail here rather than
// slipping past the pre-check.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	res, err := r.coll.InsertOne(ctx, application)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrAlreadyApplied
		}
		return fmt.Errorf("inserting application: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		application.ID = oid
	}
	return nil
}

// GetByID finds an application by its object id.
func (r *ApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("finding application: %w", err)
	}
	return &application, nil
}

// GetByStudentAndCompany finds the student's application to one company.
// The unique (student_id, company_id) index guarantees at most one.
func (r *ApplicationRepository) GetByStudentAndCompany(ctx context.Context, studentID string, companyID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.coll.FindOne(ctx, bson.M{
		"student_id": studentID,
		"company_id": companyID,
	}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("finding application: %w", err)
	}
	return &application, nil
}

// Exists reports whether the student has already applied to the company.
func (r *ApplicationRepository) Exists(ctx context.Context, studentID string, companyID primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"student_id": studentID,
		"company_id": companyID,
	})
	if err != nil {
		return false, fmt.Errorf("counting applications: %w", err)
	}
	return count > 0, nil
}

// ListByStudent returns a page of a student's applications, newest first.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string, skip, limit int64) ([]models.Application, int64, error) {
	return r.list(ctx, bson.M{"student_id": studentID}, skip, limit)
}

// ListByCompany returns a page of a company's applications, newest first.
func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID, skip, limit int64) ([]models.Application, int64, error) {
	return r.list(ctx, bson.M{"company_id": companyID}, skip, limit)
}

// List returns a page of applications matching an arbitrary filter.
func (r *ApplicationRepository) List(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Application, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.list(ctx, filter, skip, limit)
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Application, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting applications: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "applied_date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing applications: %w", err)
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, 0, fmt.Errorf("decoding applications: %w", err)
	}
	return applications, total, nil
}

// UpdateStatus transitions an application and stamps status_updated_date.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Application, error) {
	now := time.Now().UTC()
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var application models.Application
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "status_updated_date": now}},
		opts).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("updating application status: %w", err)
	}
	return &application, nil
}

// Count counts applications matching the filter.
func (r *ApplicationRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting applications: %w", err)
	}
	return count, nil
}

// CountByCompany aggregates application counts per company, most applied
// first, for the popular-companies report.
func (r *ApplicationRepository) CountByCompany(ctx context.Context, limit int64) ([]struct {
	CompanyID primitive.ObjectID `bson:"_id"`
	Count     int64              `bson:"count"`
}, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$company_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating applications: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CompanyID primitive.ObjectID `bson:"_id"`
		Count     int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding aggregation: %w", err)
	}
	return rows, nil
}

// FindSince returns applications created on or after the cutoff, oldest
// first, for timeline charts.
func (r *ApplicationRepository) FindSince(ctx context.Context, since time.Time) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"applied_date": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("decoding applications: %w", err)
	}
	return applications, nil
}

// Delete removes an application document.
func (r *ApplicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
