package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// CompanyService handles job postings and the application lifecycle
type CompanyService struct {
	companyRepo     *repositories.CompanyRepository
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	notifier        *NotificationService
	logger          zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	notifier *NotificationService,
	logger zerolog.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// CreateCompany creates a job posting. Posting time defaults to now and
// the posting starts active unless explicitly created inactive.
func (s *CompanyService) CreateCompany(ctx context.Context, req *dto.CompanyCreateRequest) (*models.Company, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.JobTitle) == "" {
		return nil, apperrors.NewBadRequestError("name and job_title are required")
	}

	now := time.Now().UTC()
	company := &models.Company{
		Name:           strings.TrimSpace(req.Name),
		Logo:           req.Logo,
		JobTitle:       strings.TrimSpace(req.JobTitle),
		JobDescription: req.JobDescription,
		JobType:        req.JobType,
		WorkPlace:      req.WorkPlace,
		Location:       req.Location,
		Duration:       req.Duration,
		Stipend:        req.Stipend,
		Requirements:   req.Requirements,
		PostedDate:     now.Unix(),
		Deadline:       req.Deadline,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Active != nil {
		company.Active = *req.Active
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info().Str("company", company.Name).Str("job_title", company.JobTitle).
		Msg("Company posting created")
	return company, nil
}

// ListCompanies returns a filtered page of postings.
func (s *CompanyService) ListCompanies(ctx context.Context, filter *dto.CompanyFilter, page, perPage int) (*dto.CompanyListResponse, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["active"] = true
	}
	if filter.JobType != "" {
		query["job_type"] = filter.JobType
	}
	if filter.WorkPlace != "" {
		query["work_place"] = filter.WorkPlace
	}
	if filter.Duration != "" {
		query["duration"] = filter.Duration
	}
	if filter.MinStipend > 0 {
		query["stipend"] = bson.M{"$gte": filter.MinStipend}
	}
	if filter.PostedDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -filter.PostedDays).Unix()
		query["posted_date"] = bson.M{"$gte": cutoff}
	}

	companies, total, err := s.companyRepo.List(ctx, query, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return &dto.CompanyListResponse{
		Companies:  companies,
		Pagination: helpers.NewPagination(total, page, perPage),
	}, nil
}

// GetCompany returns one posting by id string.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, oid)
}

// UpdateCompany applies a partial update to a posting.
func (s *CompanyService) UpdateCompany(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	allowed := map[string]bool{
		"name": true, "logo": true, "job_title": true, "job_description": true,
		"job_type": true, "work_place": true, "location": true, "duration": true,
		"stipend": true, "requirements": true, "deadline": true, "active": true,
	}
	fields := bson.M{}
	for key, value := range updates {
		if allowed[key] {
			fields[key] = value
		}
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no updatable fields provided")
	}
	return s.companyRepo.Update(ctx, oid, fields)
}

// DeactivateCompany soft-deletes a posting. Existing applications keep
// referencing it.
func (s *CompanyService) DeactivateCompany(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	return s.companyRepo.Deactivate(ctx, oid)
}

// Apply submits a student's application to an active posting. Duplicate
// submissions are rejected, first by a pre-check and then by the unique
// index if two requests race.
func (s *CompanyService) Apply(ctx context.Context, studentID, companyID string, req *dto.ApplyRequest) (*models.Application, error) {
	oid, err := parseObjectID(companyID)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !company.Active {
		return nil, apperrors.NewBadRequestError("company is no longer accepting applications")
	}
	if company.Deadline > 0 && time.Now().Unix() > company.Deadline {
		return nil, apperrors.NewBadRequestError("application deadline has passed")
	}

	if exists, err := s.applicationRepo.Exists(ctx, studentID, oid); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.Application{
		StudentID:    studentID,
		CompanyID:    oid,
		Status:       models.ApplicationPending,
		AppliedDate:  time.Now().UTC(),
		CoverLetter:  req.CoverLetter,
		Portfolio:    req.Portfolio,
		Availability: req.Availability,
		NoticePeriod: req.NoticePeriod,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	if err := s.studentRepo.AddCompanyToBucket(ctx, studentID, "applied", oid); err != nil {
		s.logger.Warn().Err(err).Str("student", studentID).Msg("Failed to track applied company")
	}

	s.notifier.Notify(ctx, studentID, "Application submitted",
		fmt.Sprintf("Your application to %s for %s has been received.", company.Name, company.JobTitle),
		models.NotificationApplication, application.ID.Hex())

	return application, nil
}

// MyApplications returns a student's applications with company summaries.
func (s *CompanyService) MyApplications(ctx context.Context, studentID string, page, perPage int) (*dto.ApplicationListResponse, error) {
	applications, total, err := s.applicationRepo.ListByStudent(ctx, studentID, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return s.buildApplicationList(ctx, applications, total, page, perPage)
}

// CompanyApplications returns every application to one posting.
func (s *CompanyService) CompanyApplications(ctx context.Context, companyID string, page, perPage int) (*dto.ApplicationListResponse, error) {
	oid, err := parseObjectID(companyID)
	if err != nil {
		return nil, err
	}
	applications, total, err := s.applicationRepo.ListByCompany(ctx, oid, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return s.buildApplicationList(ctx, applications, total, page, perPage)
}

// ListApplications returns a page of applications, optionally filtered by
// status, for the admin view.
func (s *CompanyService) ListApplications(ctx context.Context, status string, page, perPage int) (*dto.ApplicationListResponse, error) {
	filter := bson.M{}
	if status != "" {
		if !models.ValidApplicationStatus(status) {
			return nil, apperrors.ErrInvalidStatus
		}
		filter["status"] = status
	}
	applications, total, err := s.applicationRepo.List(ctx, filter, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return s.buildApplicationList(ctx, applications, total, page, perPage)
}

func (s *CompanyService) buildApplicationList(ctx context.Context, applications []models.Application, total int64, page, perPage int) (*dto.ApplicationListResponse, error) {
	views := make([]dto.ApplicationView, 0, len(applications))
	summaries := map[primitive.ObjectID]*models.CompanySummary{}
	for _, application := range applications {
		summary, ok := summaries[application.CompanyID]
		if !ok {
			company, err := s.companyRepo.GetByID(ctx, application.CompanyID)
			if err == nil {
				summary = &models.CompanySummary{
					Name:     company.Name,
					Logo:     company.Logo,
					JobTitle: company.JobTitle,
				}
			}
			summaries[application.CompanyID] = summary
		}
		views = append(views, dto.ApplicationView{Application: application, Company: summary})
	}
	return &dto.ApplicationListResponse{
		Applications: views,
		Pagination:   helpers.NewPagination(total, page, perPage),
	}, nil
}

// ApplicationStatus returns one of the student's applications with its
// company summary. Applications belonging to other students come back as
// not found.
func (s *CompanyService) ApplicationStatus(ctx context.Context, studentID, applicationID string) (*dto.ApplicationView, error) {
	oid, err := parseObjectID(applicationID)
	if err != nil {
		return nil, err
	}
	application, err := s.applicationRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if application.StudentID != studentID {
		return nil, apperrors.ErrApplicationNotFound
	}

	var summary *models.CompanySummary
	if company, err := s.companyRepo.GetByID(ctx, application.CompanyID); err == nil {
		summary = &models.CompanySummary{
			Name:     company.Name,
			Logo:     company.Logo,
			JobTitle: company.JobTitle,
		}
	}
	return &dto.ApplicationView{Application: *application, Company: summary}, nil
}

// CompanyApplicationStatus returns the status of the student's application
// to one company, keyed by the company id.
func (s *CompanyService) CompanyApplicationStatus(ctx context.Context, studentID, companyID string) (*dto.ApplicationView, error) {
	oid, err := parseObjectID(companyID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	application, err := s.applicationRepo.GetByStudentAndCompany(ctx, studentID, oid)
	if err != nil {
		return nil, err
	}

	summary := &models.CompanySummary{
		Name:     company.Name,
		Logo:     company.Logo,
		JobTitle: company.JobTitle,
	}
	return &dto.ApplicationView{Application: *application, Company: summary}, nil
}

// UpdateApplicationStatus transitions an application, keeps the student's
// company buckets in sync and notifies the student.
func (s *CompanyService) UpdateApplicationStatus(ctx context.Context, applicationID, status string) (*models.Application, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}
	oid, err := parseObjectID(applicationID)
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.UpdateStatus(ctx, oid, status)
	if err != nil {
		return nil, err
	}

	if status == models.ApplicationRejected {
		if err := s.studentRepo.AddCompanyToBucket(ctx, application.StudentID, "rejected", application.CompanyID); err != nil {
			s.logger.Warn().Err(err).Str("student", application.StudentID).Msg("Failed to track rejected company")
		}
	}

	companyName := "the company"
	if company, err := s.companyRepo.GetByID(ctx, application.CompanyID); err == nil {
		companyName = company.Name
	}
	s.notifier.Notify(ctx, application.StudentID, "Application "+status,
		fmt.Sprintf("Your application to %s is now %s.", companyName, status),
		models.NotificationApplication, application.ID.Hex())

	return application, nil
}

// parseObjectID converts a hex id from the URL into an ObjectID. A
// malformed id is a client error, not a missing resource.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperrors.NewBadRequestError("invalid id format")
	}
	return oid, nil
}
