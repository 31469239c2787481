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

// StudentRepository handles database operations for students
type StudentRepository struct {
	coll *mongo.Collection
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(m *db.Mongo) *StudentRepository {
	return &StudentRepository{coll: m.Collection(db.CollStudents)}
}

// Create inserts a new student document. Duplicate registration numbers or
// emails surface as apperrors.ErrConflict via the unique indexes.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	res, err := r.coll.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrRegistrationNoAlreadyExists
		}
		return fmt.Errorf("inserting student: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid
	}
	return nil
}

// GetByRegistrationNo finds a student by registration number.
func (r *StudentRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (*models.Student, error) {
	var student models.Student
	err := r.coll.FindOne(ctx, bson.M{"registration_no": registrationNo}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("finding student by registration no: %w", err)
	}
	return &student, nil
}

// GetByEmail finds a student by email address.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := r.coll.FindOne(ctx, bson.M{"email_id": email}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("finding student by email: %w", err)
	}
	return &student, nil
}

// ExistsByRegistrationNo reports whether a student with the registration
// number is already registered.
func (r *StudentRepository) ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"registration_no": registrationNo})
	if err != nil {
		return false, fmt.Errorf("counting students: %w", err)
	}
	return count > 0, nil
}

// ExistsByEmail reports whether the email is already taken.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email_id": email})
	if err != nil {
		return false, fmt.Errorf("counting students: %w", err)
	}
	return count > 0, nil
}

// UpdateFields sets the given top-level fields on a student document.
func (r *StudentRepository) UpdateFields(ctx context.Context, registrationNo string, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo},
		bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating student: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdatePassword replaces a student's password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, registrationNo, passwordHash string) error {
	return r.UpdateFields(ctx, registrationNo, bson.M{"password": passwordHash})
}

// PushToArray appends a value to an array field on the student document.
func (r *StudentRepository) PushToArray(ctx context.Context, registrationNo, field string, value interface{}) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo},
		bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("pushing to %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetArrayElement replaces one element of an array field by position. The
// filter requires the element to exist, so an out-of-range index comes back
// as not found instead of growing the array.
func (r *StudentRepository) SetArrayElement(ctx context.Context, registrationNo, field string, index int, value interface{}) error {
	position := fmt.Sprintf("%s.%d", field, index)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo, position: bson.M{"$exists": true}},
		bson.M{"$set": bson.M{position: value}})
	if err != nil {
		return fmt.Errorf("updating %s: %w", position, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// RemoveArrayElement deletes one element of an array field by position.
// MongoDB has no positional delete, so the element is first unset to null
// and then pulled.
func (r *StudentRepository) RemoveArrayElement(ctx context.Context, registrationNo, field string, index int) error {
	position := fmt.Sprintf("%s.%d", field, index)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo, position: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{position: 1}})
	if err != nil {
		return fmt.Errorf("unsetting %s: %w", position, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrResourceNotFound
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo},
		bson.M{"$pull": bson.M{field: nil}})
	if err != nil {
		return fmt.Errorf("pulling null from %s: %w", field, err)
	}
	return nil
}

// AddCompanyToBucket records a company id into one of the student's
// application tracking buckets (companies.applied, companies.rejected and
// so on), skipping duplicates.
func (r *StudentRepository) AddCompanyToBucket(ctx context.Context, registrationNo, bucket string, companyID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo},
		bson.M{"$addToSet": bson.M{"companies." + bucket: companyID}})
	if err != nil {
		return fmt.Errorf("updating company bucket: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// RemoveCompanyFromBucket pulls a company id out of a tracking bucket.
func (r *StudentRepository) RemoveCompanyFromBucket(ctx context.Context, registrationNo, bucket string, companyID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"registration_no": registrationNo},
		bson.M{"$pull": bson.M{"companies." + bucket: companyID}})
	if err != nil {
		return fmt.Errorf("updating company bucket: %w", err)
	}
	return nil
}

// Search finds students whose name, registration number, email or
// specialization match the query, case-insensitively.
func (r *StudentRepository) Search(ctx context.Context, query string, limit int64) ([]models.Student, error) {
	filter := bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": query, "$options": "i"}},
		{"registration_no": bson.M{"$regex": query, "$options": "i"}},
		{"email_id": bson.M{"$regex": query, "$options": "i"}},
		{"specialization": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find().SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("searching students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decoding students: %w", err)
	}
	return students, nil
}

// List returns a page of students together with the total count.
func (r *StudentRepository) List(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Student, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting students: %w", err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, 0, fmt.Errorf("decoding students: %w", err)
	}
	return students, total, nil
}

// ListRegistrationNos returns every registered student's registration
// number, used when broadcasting notifications.
func (r *StudentRepository) ListRegistrationNos(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"registration_no": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing registration numbers: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		RegistrationNo string `bson:"registration_no"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding registration numbers: %w", err)
	}
	nos := make([]string, 0, len(rows))
	for _, row := range rows {
		nos = append(nos, row.RegistrationNo)
	}
	return nos, nil
}

// Count counts students matching the filter.
func (r *StudentRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting students: %w", err)
	}
	return count, nil
}

// Delete removes a student document.
func (r *StudentRepository) Delete(ctx context.Context, registrationNo string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"registration_no": registrationNo})
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
