package dto

import "github.com/savi/placement-portal/internal/app/models"

// ExperienceRequest adds or updates a job entry on the profile.
type ExperienceRequest struct {
	CompanyName string   `json:"company_name"`
	Position    string   `json:"position"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	SkillsUsed  []string `json:"skills_used"`
}

// ProjectRequest adds a portfolio project.
type ProjectRequest struct {
	ProjectName      string   `json:"project_name"`
	Description      string   `json:"description"`
	TechnologiesUsed []string `json:"technologies_used"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	GithubLink       string   `json:"github_link"`
	LiveLink         string   `json:"live_link"`
}

// CertificationRequest adds a certificate without a file upload; multipart
// requests carry the same fields as form values alongside the file.
type CertificationRequest struct {
	CertificateName  string `json:"certificate_name"`
	InstituteName    string `json:"institute_name"`
	VerificationLink string `json:"verification_link"`
	PDF              string `json:"pdf"`
}

// SkillsUpdateRequest replaces one or both skill lists.
type SkillsUpdateRequest struct {
	Technical    []string `json:"technical"`
	NonTechnical []string `json:"non_technical"`
}

// PortfolioResponse is the authenticated portfolio projection.
type PortfolioResponse struct {
	Name           string                 `json:"name"`
	RollNumber     string                 `json:"roll_number"`
	RegistrationNo string                 `json:"registration_no"`
	EmailID        string                 `json:"email_id"`
	MobileNo       string                 `json:"mobile_no"`
	Specialization string                 `json:"specialization"`
	Skills         models.Skills          `json:"skills"`
	Experience     []models.Experience    `json:"experience"`
	Projects       []models.Project       `json:"projects"`
	Education      models.Education       `json:"education"`
	Certifications []models.Certification `json:"certifications"`
	CV             string                 `json:"cv"`
}

// PublicPortfolioResponse is the unauthenticated projection: no contact
// details, no CV path.
type PublicPortfolioResponse struct {
	Name           string                 `json:"name"`
	RegistrationNo string                 `json:"registration_no"`
	Specialization string                 `json:"specialization"`
	Skills         models.Skills          `json:"skills"`
	Projects       []models.Project       `json:"projects"`
	Certifications []models.Certification `json:"certifications"`
}
