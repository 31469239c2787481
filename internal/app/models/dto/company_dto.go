package dto

import (
	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// CompanyCreateRequest creates a job posting (admin only). Name and
// JobTitle are the only required fields; everything else defaults.
type CompanyCreateRequest struct {
	Name           string `json:"name"`
	Logo           string `json:"logo"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	JobType        string `json:"job_type"`
	WorkPlace      string `json:"work_place"`
	Location       string `json:"location"`
	Duration       string `json:"duration"`
	Stipend        int64  `json:"stipend"`
	Requirements   string `json:"requirements"`
	Deadline       int64  `json:"deadline"`
	Active         *bool  `json:"active"`
}

// CompanyFilter narrows company listings.
type CompanyFilter struct {
	JobType    string
	WorkPlace  string
	Duration   string
	MinStipend int64
	PostedDays int
	ActiveOnly bool
}

// ApplyRequest is the free-text portion of an application submission.
type ApplyRequest struct {
	CoverLetter  string `json:"coverLetter"`
	Portfolio    string `json:"portfolio"`
	Availability string `json:"availability"`
	NoticePeriod string `json:"noticePeriod"`
}

// CompanyListResponse is a paginated company listing.
type CompanyListResponse struct {
	Companies []models.Company `json:"companies"`
	helpers.Pagination
}

// ScoredCompany is a company with its recommendation match score.
type ScoredCompany struct {
	models.Company
	MatchPercentage int `json:"match_percentage"`
}

// RecommendationResponse is a paginated, scored company listing.
type RecommendationResponse struct {
	Companies []ScoredCompany `json:"companies"`
	helpers.Pagination
	RecommendationType string `json:"recommendation_type"`
}

// TrendingCompany is a company with its recent application volume and
// recency-weighted trend score.
type TrendingCompany struct {
	models.Company
	ApplicationCount int64   `json:"application_count"`
	TrendScore       float64 `json:"trend_score"`
}

// ApplicationView is an application with its company summary embedded.
type ApplicationView struct {
	models.Application
	Company *models.CompanySummary `json:"company,omitempty"`
}

// ApplicationListResponse is a paginated application listing.
type ApplicationListResponse struct {
	Applications []ApplicationView `json:"applications"`
	helpers.Pagination
}

// StatusUpdateRequest changes an application's status (admin only).
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
