package dto

import "github.com/savi/placement-portal/internal/app/models"

// StudentDashboard is the student home page payload: the profile document,
// the latest announcements and the count block.
type StudentDashboard struct {
	User                *models.Student       `json:"user"`
	RecentAnnouncements []models.Announcement `json:"recent_announcements"`
	Stats               StudentStats          `json:"stats"`
}

// StudentStats is the per-student dashboard count block.
type StudentStats struct {
	UnreadMessages        int64 `json:"unread_messages"`
	UpcomingInterviews    int64 `json:"upcoming_interviews"`
	ActiveCompanies       int64 `json:"active_companies"`
	AppliedCompanies      int   `json:"applied_companies"`
	RejectedCompanies     int   `json:"rejected_companies"`
	InterviewsAttended    int   `json:"interviews_attended"`
	InterviewsNotAttended int   `json:"interviews_not_attended"`
}

// FacultyStats is the faculty dashboard block; PlacementPercentage is zero
// when no students exist.
type FacultyStats struct {
	TotalStudents       int64   `json:"total_students"`
	PlacedStudents      int64   `json:"placed_students"`
	PlacementPercentage float64 `json:"placement_percentage"`
}

// AdminStats is the admin dashboard count block.
type AdminStats struct {
	StudentsCount       int64 `json:"students_count"`
	CompaniesCount      int64 `json:"companies_count"`
	ApplicationsCount   int64 `json:"applications_count"`
	PendingApplications int64 `json:"pending_applications"`
}

// AnalyticsOverview aggregates portal-wide counts for the admin analytics
// page.
type AnalyticsOverview struct {
	TotalStudents     int64            `json:"total_students"`
	TotalCompanies    int64            `json:"total_companies"`
	TotalApplications int64            `json:"total_applications"`
	ActiveCompanies   int64            `json:"active_companies"`
	ApplicationStats  ApplicationStats `json:"application_stats"`
}

// ApplicationStats is the per-status application breakdown.
type ApplicationStats struct {
	Pending     int64   `json:"pending"`
	Approved    int64   `json:"approved"`
	Rejected    int64   `json:"rejected"`
	SuccessRate float64 `json:"success_rate"`
}

// ApplicationTimeline holds daily application/approval/rejection counts
// for charting.
type ApplicationTimeline struct {
	Dates        []string `json:"dates"`
	Applications []int    `json:"applications"`
	Approvals    []int    `json:"approvals"`
	Rejections   []int    `json:"rejections"`
}

// PopularCompany is one row of the most-applied-to companies report.
type PopularCompany struct {
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`
	JobTitle         string `json:"job_title"`
	Logo             string `json:"logo"`
	ApplicationCount int64  `json:"application_count"`
}
