package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
)

// AnalyticsService builds admin-facing aggregate reports
type AnalyticsService struct {
	studentRepo     *repositories.StudentRepository
	companyRepo     *repositories.CompanyRepository
	applicationRepo *repositories.ApplicationRepository
	logger          zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		studentRepo:     studentRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// Overview returns the portal-wide totals and the per-status application
// breakdown.
func (s *AnalyticsService) Overview(ctx context.Context) (*dto.AnalyticsOverview, error) {
	students, err := s.studentRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	activeCompanies, err := s.companyRepo.Count(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.applicationRepo.Count(ctx, bson.M{"status": models.ApplicationPending})
	if err != nil {
		return nil, err
	}
	approved, err := s.applicationRepo.Count(ctx, bson.M{"status": models.ApplicationApproved})
	if err != nil {
		return nil, err
	}
	rejected, err := s.applicationRepo.Count(ctx, bson.M{"status": models.ApplicationRejected})
	if err != nil {
		return nil, err
	}

	stats := dto.ApplicationStats{Pending: pending, Approved: approved, Rejected: rejected}
	if applications > 0 {
		stats.SuccessRate = math.Round(float64(approved)/float64(applications)*10000) / 100
	}

	return &dto.AnalyticsOverview{
		TotalStudents:     students,
		TotalCompanies:    companies,
		TotalApplications: applications,
		ActiveCompanies:   activeCompanies,
		ApplicationStats:  stats,
	}, nil
}

// Timeline buckets the last N days of applications by submission day and,
// for decided ones, by decision day.
func (s *AnalyticsService) Timeline(ctx context.Context, days int) (*dto.ApplicationTimeline, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	applications, err := s.applicationRepo.FindSince(ctx, start)
	if err != nil {
		return nil, err
	}

	timeline := &dto.ApplicationTimeline{
		Dates:        make([]string, days),
		Applications: make([]int, days),
		Approvals:    make([]int, days),
		Rejections:   make([]int, days),
	}
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		timeline.Dates[i] = date
		index[date] = i
	}

	for _, application := range applications {
		if i, ok := index[application.AppliedDate.UTC().Format("2006-01-02")]; ok {
			timeline.Applications[i]++
		}
		if application.StatusUpdatedDate == nil {
			continue
		}
		if i, ok := index[application.StatusUpdatedDate.UTC().Format("2006-01-02")]; ok {
			switch application.Status {
			case models.ApplicationApproved:
				timeline.Approvals[i]++
			case models.ApplicationRejected:
				timeline.Rejections[i]++
			}
		}
	}
	return timeline, nil
}

// PopularCompanies returns the postings with the most applications.
func (s *AnalyticsService) PopularCompanies(ctx context.Context, limit int) ([]dto.PopularCompany, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	rows, err := s.applicationRepo.CountByCompany(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	popular := make([]dto.PopularCompany, 0, len(rows))
	for _, row := range rows {
		entry := dto.PopularCompany{
			CompanyID:        row.CompanyID.Hex(),
			ApplicationCount: row.Count,
		}
		if company, err := s.companyRepo.GetByID(ctx, row.CompanyID); err == nil {
			entry.Name = company.Name
			entry.JobTitle = company.JobTitle
			entry.Logo = company.Logo
		}
		popular = append(popular, entry)
	}
	return popular, nil
}
