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

// DashboardService assembles role-specific dashboard statistics
type DashboardService struct {
	studentRepo      *repositories.StudentRepository
	companyRepo      *repositories.CompanyRepository
	applicationRepo  *repositories.ApplicationRepository
	messageRepo      *repositories.MessageRepository
	interviewRepo    *repositories.InterviewRepository
	announcementRepo *repositories.AnnouncementRepository
	logger           zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	messageRepo *repositories.MessageRepository,
	interviewRepo *repositories.InterviewRepository,
	announcementRepo *repositories.AnnouncementRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		studentRepo:      studentRepo,
		companyRepo:      companyRepo,
		applicationRepo:  applicationRepo,
		messageRepo:      messageRepo,
		interviewRepo:    interviewRepo,
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// StudentDashboard returns the student home page payload: the profile
// document, the latest five announcements and the count block.
func (s *DashboardService) StudentDashboard(ctx context.Context, registrationNo string) (*dto.StudentDashboard, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, err
	}
	stats, err := s.studentStats(ctx, student)
	if err != nil {
		return nil, err
	}

	announcements, err := s.announcementRepo.ListRecent(ctx, 5)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load recent announcements")
		announcements = nil
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}

	return &dto.StudentDashboard{
		User:                student,
		RecentAnnouncements: announcements,
		Stats:               *stats,
	}, nil
}

// StudentStats returns only the count block of the student dashboard.
func (s *DashboardService) StudentStats(ctx context.Context, registrationNo string) (*dto.StudentStats, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, err
	}
	return s.studentStats(ctx, student)
}

func (s *DashboardService) studentStats(ctx context.Context, student *models.Student) (*dto.StudentStats, error) {
	unread, err := s.messageRepo.CountUnread(ctx, student.RegistrationNo)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.interviewRepo.CountUpcoming(ctx, student.RegistrationNo)
	if err != nil {
		return nil, err
	}
	activeCompanies, err := s.companyRepo.Count(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}

	return &dto.StudentStats{
		UnreadMessages:        unread,
		UpcomingInterviews:    upcoming,
		ActiveCompanies:       activeCompanies,
		AppliedCompanies:      len(student.Companies.Applied),
		RejectedCompanies:     len(student.Companies.Rejected),
		InterviewsAttended:    len(student.Companies.InterviewsAttended),
		InterviewsNotAttended: len(student.Companies.InterviewsNotAttended),
	}, nil
}

// UpcomingDeadlines returns active postings whose deadline has not passed,
// soonest first.
func (s *DashboardService) UpcomingDeadlines(ctx context.Context, limit int64) ([]models.Company, error) {
	if limit <= 0 {
		limit = 10
	}
	companies, err := s.companyRepo.UpcomingDeadlines(ctx, time.Now().Unix(), limit)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// FacultyDashboard returns cohort-level placement statistics.
func (s *DashboardService) FacultyDashboard(ctx context.Context) (*dto.FacultyStats, error) {
	total, err := s.studentRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	placed, err := s.studentRepo.Count(ctx, bson.M{"placed": true})
	if err != nil {
		return nil, err
	}

	stats := &dto.FacultyStats{TotalStudents: total, PlacedStudents: placed}
	if total > 0 {
		stats.PlacementPercentage = math.Round(float64(placed)/float64(total)*10000) / 100
	}
	return stats, nil
}

// AdminDashboard returns portal-wide counts for the admin home page.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminStats, error) {
	students, err := s.studentRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.Count(ctx, nil)
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

	return &dto.AdminStats{
		StudentsCount:       students,
		CompaniesCount:      companies,
		ApplicationsCount:   applications,
		PendingApplications: pending,
	}, nil
}
