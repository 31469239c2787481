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

// CompanyRepository handles database operations for company postings
type CompanyRepository struct {
	coll *mongo.Collection
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(m *db.Mongo) *CompanyRepository {
	return &CompanyRepository{coll: m.Collection(db.CollCompanies)}
}

// Create inserts a new company posting.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	res, err := r.coll.InsertOne(ctx, company)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		company.ID = oid
	}
	return nil
}

// GetByID finds a company posting by its object id.
func (r *CompanyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	var company models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("finding company: %w", err)
	}
	return &company, nil
}

// List returns a page of companies matching the filter, newest first.
func (r *CompanyRepository) List(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Company, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting companies: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "posted_date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, 0, fmt.Errorf("decoding companies: %w", err)
	}
	return companies, total, nil
}

// FindAll returns every company matching the filter, without pagination.
// Used by the recommendation engine which scores before it pages.
func (r *CompanyRepository) FindAll(ctx context.Context, filter bson.M) ([]models.Company, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decoding companies: %w", err)
	}
	return companies, nil
}

// Update sets the given fields on a company posting and bumps updated_at.
func (r *CompanyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// Deactivate soft-deletes a posting by clearing its active flag. The
// posting stays visible in application history.
func (r *CompanyRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, bson.M{"active": false})
}

// Search finds active companies whose name, job title, description,
// requirements or location match the query, case-insensitively. Extra
// equality filters (job_type, work_place) narrow the result further.
func (r *CompanyRepository) Search(ctx context.Context, query string, extra bson.M, limit int64) ([]models.Company, error) {
	filter := bson.M{
		"active": true,
		"$or": []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"job_title": bson.M{"$regex": query, "$options": "i"}},
			{"job_description": bson.M{"$regex": query, "$options": "i"}},
			{"requirements": bson.M{"$regex": query, "$options": "i"}},
			{"location": bson.M{"$regex": query, "$options": "i"}},
		},
	}
	for key, value := range extra {
		filter[key] = value
	}
	opts := options.Find().SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decoding companies: %w", err)
	}
	return companies, nil
}

// UpcomingDeadlines returns active postings whose deadline is still ahead
// of the given epoch, soonest first.
func (r *CompanyRepository) UpcomingDeadlines(ctx context.Context, after int64, limit int64) ([]models.Company, error) {
	filter := bson.M{"active": true, "deadline": bson.M{"$gt": after}}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "deadline", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming deadlines: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decoding companies: %w", err)
	}
	return companies, nil
}

// Count counts companies matching the filter.
func (r *CompanyRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting companies: %w", err)
	}
	return count, nil
}
