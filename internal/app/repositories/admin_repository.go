package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

// AdminRepository handles database operations for admin accounts
type AdminRepository struct {
	coll *mongo.Collection
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(m *db.Mongo) *AdminRepository {
	return &AdminRepository{coll: m.Collection(db.CollAdmins)}
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("inserting admin: %w", err)
	}
	return nil
}

// GetByUsername finds an admin by username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding admin: %w", err)
	}
	return &admin, nil
}

// TouchLastLogin stamps the admin's last successful login time.
func (r *AdminRepository) TouchLastLogin(ctx context.Context, username string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

// Count counts admin accounts, used to decide whether to seed the default.
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}
