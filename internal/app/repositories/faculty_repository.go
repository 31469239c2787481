package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

// FacultyRepository handles database operations for faculty accounts
type FacultyRepository struct {
	coll *mongo.Collection
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(m *db.Mongo) *FacultyRepository {
	return &FacultyRepository{coll: m.Collection(db.CollFaculty)}
}

// GetByEmail finds a faculty member by email address.
func (r *FacultyRepository) GetByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.coll.FindOne(ctx, bson.M{"email_id": email}).Decode(&faculty)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding faculty: %w", err)
	}
	return &faculty, nil
}

// GetByIdentity finds a faculty member by the identity embedded in their
// token, which is their email.
func (r *FacultyRepository) GetByIdentity(ctx context.Context, identity string) (*models.Faculty, error) {
	return r.GetByEmail(ctx, identity)
}
