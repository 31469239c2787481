package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

// searchResultLimit caps each scoped result section; the global scope
// returns a short highlight list per section instead.
const (
	searchResultLimit = 20
	globalResultLimit = 5
)

// SearchService runs case-insensitive keyword search across companies,
// announcements and, for admins, students
type SearchService struct {
	studentRepo      *repositories.StudentRepository
	companyRepo      *repositories.CompanyRepository
	announcementRepo *repositories.AnnouncementRepository
	logger           zerolog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	announcementRepo *repositories.AnnouncementRepository,
	logger zerolog.Logger,
) *SearchService {
	return &SearchService{
		studentRepo:      studentRepo,
		companyRepo:      companyRepo,
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// StudentResult is the trimmed student projection returned by search.
type StudentResult struct {
	RegistrationNo string `json:"registration_no"`
	Name           string `json:"name"`
	EmailID        string `json:"email_id"`
	Specialization string `json:"specialization"`
}

// CompanySearchFilters narrow the company scope.
type CompanySearchFilters struct {
	JobType   string
	WorkPlace string
}

// SearchResults groups the matches per collection.
type SearchResults struct {
	Students      []StudentResult       `json:"students,omitempty"`
	Companies     []models.Company      `json:"companies,omitempty"`
	Announcements []models.Announcement `json:"announcements,omitempty"`
	Total         int                   `json:"total"`
	Query         string                `json:"query"`
	Scope         string                `json:"scope"`
}

// Search runs a scoped keyword search. Scope is one of "companies",
// "students", "announcements" or "global" (the default), where global
// returns the top matches from companies and announcements combined.
// The students scope is restricted to admins.
func (s *SearchService) Search(ctx context.Context, query, scope, role string, filters CompanySearchFilters) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewBadRequestError("search query is required")
	}
	if scope == "" {
		scope = "global"
	}

	results := &SearchResults{Query: query, Scope: scope}

	switch scope {
	case "companies":
		if err := s.searchCompanies(ctx, query, filters, searchResultLimit, results); err != nil {
			return nil, err
		}
	case "students":
		if role != models.RoleAdmin {
			return nil, apperrors.NewForbiddenError("student search is restricted to admins")
		}
		if err := s.searchStudents(ctx, query, searchResultLimit, results); err != nil {
			return nil, err
		}
	case "announcements":
		if err := s.searchAnnouncements(ctx, query, searchResultLimit, results); err != nil {
			return nil, err
		}
	case "global":
		if err := s.searchCompanies(ctx, query, filters, globalResultLimit, results); err != nil {
			return nil, err
		}
		if err := s.searchAnnouncements(ctx, query, globalResultLimit, results); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.NewBadRequestError("unknown search scope")
	}

	results.Total = len(results.Students) + len(results.Companies) + len(results.Announcements)
	return results, nil
}

func (s *SearchService) searchCompanies(ctx context.Context, query string, filters CompanySearchFilters, limit int64, results *SearchResults) error {
	extra := bson.M{}
	if filters.JobType != "" {
		extra["job_type"] = filters.JobType
	}
	if filters.WorkPlace != "" {
		extra["work_place"] = filters.WorkPlace
	}

	companies, err := s.companyRepo.Search(ctx, query, extra, limit)
	if err != nil {
		return err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	results.Companies = companies
	return nil
}

func (s *SearchService) searchStudents(ctx context.Context, query string, limit int64, results *SearchResults) error {
	students, err := s.studentRepo.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	results.Students = make([]StudentResult, 0, len(students))
	for _, student := range students {
		results.Students = append(results.Students, StudentResult{
			RegistrationNo: student.RegistrationNo,
			Name:           student.Name,
			EmailID:        student.EmailID,
			Specialization: student.Specialization,
		})
	}
	return nil
}

func (s *SearchService) searchAnnouncements(ctx context.Context, query string, limit int64, results *SearchResults) error {
	announcements, err := s.announcementRepo.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	results.Announcements = announcements
	return nil
}
