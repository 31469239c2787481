package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// InterviewService handles interview scheduling and status tracking
type InterviewService struct {
	interviewRepo *repositories.InterviewRepository
	studentRepo   *repositories.StudentRepository
	notifier      *NotificationService
	logger        zerolog.Logger
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(
	interviewRepo *repositories.InterviewRepository,
	studentRepo *repositories.StudentRepository,
	notifier *NotificationService,
	logger zerolog.Logger,
) *InterviewService {
	return &InterviewService{
		interviewRepo: interviewRepo,
		studentRepo:   studentRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// Schedule books an interview slot for a student and notifies them.
func (s *InterviewService) Schedule(ctx context.Context, req *dto.InterviewCreateRequest) (*models.Interview, error) {
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.StudentID) == "" || strings.TrimSpace(req.Date) == "" {
		return nil, apperrors.NewBadRequestError("company_name, student_id and date are required")
	}

	if _, err := s.studentRepo.GetByRegistrationNo(ctx, req.StudentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	interview := &models.Interview{
		CompanyName: strings.TrimSpace(req.CompanyName),
		StudentID:   strings.TrimSpace(req.StudentID),
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Mode:        req.Mode,
		Status:      models.InterviewScheduled,
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, interview.StudentID, "Interview scheduled",
		"Interview with "+interview.CompanyName+" on "+interview.Date+" "+interview.Time+".",
		models.NotificationInterview, interview.ID.Hex())

	s.logger.Info().Str("student", interview.StudentID).Str("company", interview.CompanyName).
		Msg("Interview scheduled")
	return interview, nil
}

// ForStudent returns a student's interviews, soonest first.
func (s *InterviewService) ForStudent(ctx context.Context, studentID string) ([]models.Interview, error) {
	interviews, err := s.interviewRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if interviews == nil {
		interviews = []models.Interview{}
	}
	return interviews, nil
}

// InterviewList is one page of interviews.
type InterviewList struct {
	Interviews []models.Interview `json:"interviews"`
	helpers.Pagination
}

// List returns a page of interviews for the admin view, optionally
// filtered by status or student.
func (s *InterviewService) List(ctx context.Context, status, studentID string, page, perPage int) (*InterviewList, error) {
	filter := bson.M{}
	if status != "" {
		if !models.ValidInterviewStatus(status) {
			return nil, apperrors.ErrInvalidStatus
		}
		filter["status"] = status
	}
	if studentID != "" {
		filter["student_id"] = studentID
	}

	interviews, total, err := s.interviewRepo.List(ctx, filter, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	if interviews == nil {
		interviews = []models.Interview{}
	}
	return &InterviewList{
		Interviews: interviews,
		Pagination: helpers.NewPagination(total, page, perPage),
	}, nil
}

// UpdateStatus transitions an interview and keeps the student's attendance
// buckets current when it completes or is missed.
func (s *InterviewService) UpdateStatus(ctx context.Context, interviewID, status string) error {
	if !models.ValidInterviewStatus(status) {
		return apperrors.ErrInvalidStatus
	}
	oid, err := parseObjectID(interviewID)
	if err != nil {
		return err
	}

	interview, err := s.interviewRepo.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.interviewRepo.UpdateStatus(ctx, oid, status); err != nil {
		return err
	}

	var bucket string
	switch status {
	case models.InterviewCompleted:
		bucket = "interviews_attended"
	case models.InterviewMissed:
		bucket = "interviews_not_attended"
	}
	if bucket != "" {
		// Interviews carry a company name rather than a posting id, so the
		// bucket entry uses the interview's own id.
		if err := s.studentRepo.AddCompanyToBucket(ctx, interview.StudentID, bucket, oid); err != nil {
			s.logger.Warn().Err(err).Str("student", interview.StudentID).
				Msg("Failed to track interview attendance")
		}
	}

	s.notifier.Notify(ctx, interview.StudentID, "Interview "+status,
		"Your interview with "+interview.CompanyName+" is now "+status+".",
		models.NotificationInterview, interview.ID.Hex())
	return nil
}

// Delete removes an interview slot.
func (s *InterviewService) Delete(ctx context.Context, interviewID string) error {
	oid, err := parseObjectID(interviewID)
	if err != nil {
		return err
	}
	return s.interviewRepo.Delete(ctx, oid)
}
