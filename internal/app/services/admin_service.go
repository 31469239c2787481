package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// AdminService handles student administration
type AdminService struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{studentRepo: studentRepo, logger: logger}
}

// StudentList is one page of students.
type StudentList struct {
	Students []models.Student `json:"students"`
	helpers.Pagination
}

// ListStudents returns a page of students, optionally filtered by
// placement state or specialization.
func (s *AdminService) ListStudents(ctx context.Context, placed *bool, specialization string, page, perPage int) (*StudentList, error) {
	filter := bson.M{}
	if placed != nil {
		filter["placed"] = *placed
	}
	if specialization = strings.TrimSpace(specialization); specialization != "" {
		filter["specialization"] = bson.M{"$regex": specialization, "$options": "i"}
	}

	students, total, err := s.studentRepo.List(ctx, filter, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return &StudentList{
		Students:   students,
		Pagination: helpers.NewPagination(total, page, perPage),
	}, nil
}

// GetStudent returns one student by registration number.
func (s *AdminService) GetStudent(ctx context.Context, registrationNo string) (*models.Student, error) {
	return s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
}

// SetPlaced flips a student's placement flag.
func (s *AdminService) SetPlaced(ctx context.Context, registrationNo string, placed bool) error {
	if err := s.studentRepo.UpdateFields(ctx, registrationNo, bson.M{"placed": placed}); err != nil {
		return err
	}
	s.logger.Info().Str("registration_no", registrationNo).Bool("placed", placed).
		Msg("Placement flag updated")
	return nil
}

// UpdateAcademicRecord sets admin-only academic fields on a student.
func (s *AdminService) UpdateAcademicRecord(ctx context.Context, registrationNo string, updates map[string]interface{}) error {
	allowed := map[string]bool{"marks": true, "attendance": true, "placed": true}
	fields := bson.M{}
	for key, value := range updates {
		if allowed[key] {
			fields[key] = value
		}
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no updatable fields provided")
	}
	return s.studentRepo.UpdateFields(ctx, registrationNo, fields)
}
