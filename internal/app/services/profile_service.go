package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/filestorage"
)

// Profile fields a student may change about themselves. Identity and
// academic-record fields (registration_no, email_id, marks, placed) are
// deliberately absent.
var editableProfileFields = map[string]bool{
	"name":              true,
	"mobile_no":         true,
	"gender":            true,
	"disability":        true,
	"address":           true,
	"father":            true,
	"mother":            true,
	"specialization":    true,
	"interests":         true,
	"pass_out_year":     true,
	"year_of_admission": true,
	"education":         true,
}

// ProfileService handles student profile and portfolio management
type ProfileService struct {
	studentRepo *repositories.StudentRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(studentRepo *repositories.StudentRepository, storage filestorage.FileStorage, logger zerolog.Logger) *ProfileService {
	return &ProfileService{studentRepo: studentRepo, storage: storage, logger: logger}
}

// GetProfile returns the full student document for its owner.
func (s *ProfileService) GetProfile(ctx context.Context, registrationNo string) (*models.Student, error) {
	return s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
}

// UpdateProfile applies a partial update, silently dropping any field the
// student is not allowed to edit.
func (s *ProfileService) UpdateProfile(ctx context.Context, registrationNo string, updates map[string]interface{}) error {
	fields := bson.M{}
	for key, value := range updates {
		if editableProfileFields[key] {
			fields[key] = value
		}
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no updatable fields provided")
	}
	return s.studentRepo.UpdateFields(ctx, registrationNo, fields)
}

// UpdateSkills replaces whichever of the two skill lists were provided.
func (s *ProfileService) UpdateSkills(ctx context.Context, registrationNo string, req *dto.SkillsUpdateRequest) error {
	fields := bson.M{}
	if req.Technical != nil {
		fields["skills.technical"] = req.Technical
	}
	if req.NonTechnical != nil {
		fields["skills.non_technical"] = req.NonTechnical
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no skills provided")
	}
	return s.studentRepo.UpdateFields(ctx, registrationNo, fields)
}

// AddExperience appends a job entry to the profile.
func (s *ProfileService) AddExperience(ctx context.Context, registrationNo string, req *dto.ExperienceRequest) error {
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.Position) == "" {
		return apperrors.NewBadRequestError("company_name and position are required")
	}
	entry := models.Experience{
		CompanyName: req.CompanyName,
		Position:    req.Position,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		SkillsUsed:  req.SkillsUsed,
	}
	if entry.SkillsUsed == nil {
		entry.SkillsUsed = []string{}
	}
	return s.studentRepo.PushToArray(ctx, registrationNo, "experience", entry)
}

// UpdateExperience replaces the job entry at the given position.
func (s *ProfileService) UpdateExperience(ctx context.Context, registrationNo string, index int, req *dto.ExperienceRequest) error {
	if index < 0 {
		return apperrors.ErrResourceNotFound
	}
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.Position) == "" {
		return apperrors.NewBadRequestError("company_name and position are required")
	}
	entry := models.Experience{
		CompanyName: req.CompanyName,
		Position:    req.Position,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		SkillsUsed:  req.SkillsUsed,
	}
	if entry.SkillsUsed == nil {
		entry.SkillsUsed = []string{}
	}
	return s.studentRepo.SetArrayElement(ctx, registrationNo, "experience", index, entry)
}

// DeleteExperience removes the job entry at the given position.
func (s *ProfileService) DeleteExperience(ctx context.Context, registrationNo string, index int) error {
	if index < 0 {
		return apperrors.ErrResourceNotFound
	}
	return s.studentRepo.RemoveArrayElement(ctx, registrationNo, "experience", index)
}

// AddProject appends a portfolio project.
func (s *ProfileService) AddProject(ctx context.Context, registrationNo string, req *dto.ProjectRequest) error {
	if strings.TrimSpace(req.ProjectName) == "" {
		return apperrors.NewBadRequestError("project_name is required")
	}
	entry := models.Project{
		ProjectName:      req.ProjectName,
		Description:      req.Description,
		TechnologiesUsed: req.TechnologiesUsed,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		GithubLink:       req.GithubLink,
		LiveLink:         req.LiveLink,
	}
	if entry.TechnologiesUsed == nil {
		entry.TechnologiesUsed = []string{}
	}
	return s.studentRepo.PushToArray(ctx, registrationNo, "projects", entry)
}

// AddCertification appends a certificate entry, storing the uploaded
// document when one was attached.
func (s *ProfileService) AddCertification(ctx context.Context, registrationNo string, req *dto.CertificationRequest, file *multipart.FileHeader) error {
	if strings.TrimSpace(req.CertificateName) == "" {
		return apperrors.NewBadRequestError("certificate_name is required")
	}

	entry := models.Certification{
		CertificateName:  req.CertificateName,
		InstituteName:    req.InstituteName,
		VerificationLink: req.VerificationLink,
	}
	if file != nil {
		saved, err := s.storage.Save(file, "certifications", registrationNo, "cert")
		if err != nil {
			return err
		}
		entry.PDF = saved.RelativePath
	}
	return s.studentRepo.PushToArray(ctx, registrationNo, "certifications", entry)
}

// UploadCertificationFile attaches a document to an existing certification
// entry, replacing and removing any file it previously pointed at.
func (s *ProfileService) UploadCertificationFile(ctx context.Context, registrationNo string, index int, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.ErrNoFileProvided
	}

	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(student.Certifications) {
		return "", apperrors.ErrResourceNotFound
	}

	saved, err := s.storage.Save(file, "certifications", registrationNo, "cert")
	if err != nil {
		return "", err
	}

	field := "certifications." + strconv.Itoa(index) + ".pdf"
	if err := s.studentRepo.UpdateFields(ctx, registrationNo, bson.M{field: saved.RelativePath}); err != nil {
		return "", err
	}

	if old := student.Certifications[index].PDF; old != "" && old != saved.RelativePath {
		if err := s.storage.Delete(old); err != nil {
			s.logger.Warn().Err(err).Str("path", old).Msg("Failed to remove previous certificate file")
		}
	}
	return saved.RelativePath, nil
}

// UploadCV stores a new CV and replaces the previous one, removing the old
// file best-effort once the document points at the new path.
func (s *ProfileService) UploadCV(ctx context.Context, registrationNo string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.ErrNoFileProvided
	}

	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return "", err
	}

	saved, err := s.storage.Save(file, "cv", registrationNo, "cv")
	if err != nil {
		return "", err
	}
	if err := s.studentRepo.UpdateFields(ctx, registrationNo, bson.M{"cv": saved.RelativePath}); err != nil {
		return "", err
	}

	if student.CV != "" && student.CV != saved.RelativePath {
		if err := s.storage.Delete(student.CV); err != nil {
			s.logger.Warn().Err(err).Str("path", student.CV).Msg("Failed to remove previous CV")
		}
	}
	return saved.RelativePath, nil
}

// downloadName builds a friendly attachment filename from the student's
// name and the stored file's extension.
func downloadName(studentName, label, storedPath string) string {
	base := strings.TrimSpace(studentName)
	if base == "" {
		base = label
	} else {
		base = strings.ReplaceAll(base, " ", "_") + "_" + label
	}
	return base + strings.ToLower(filepath.Ext(storedPath))
}

// DownloadCV resolves the student's stored CV for streaming, returning the
// absolute path and the filename to present to the client.
func (s *ProfileService) DownloadCV(ctx context.Context, registrationNo string) (string, string, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return "", "", err
	}
	if student.CV == "" {
		return "", "", apperrors.ErrFileNotFound
	}
	abs, err := s.storage.FullPath(student.CV)
	if err != nil {
		return "", "", err
	}
	return abs, downloadName(student.Name, "CV", student.CV), nil
}

// DownloadCertification resolves a certification document for streaming.
func (s *ProfileService) DownloadCertification(ctx context.Context, registrationNo string, index int) (string, string, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return "", "", err
	}
	if index < 0 || index >= len(student.Certifications) {
		return "", "", apperrors.ErrResourceNotFound
	}
	cert := student.Certifications[index]
	if cert.PDF == "" {
		return "", "", apperrors.ErrFileNotFound
	}
	abs, err := s.storage.FullPath(cert.PDF)
	if err != nil {
		return "", "", err
	}
	label := strings.ReplaceAll(strings.TrimSpace(cert.CertificateName), " ", "_")
	if label == "" {
		label = "Certificate"
	}
	return abs, downloadName(student.Name, label, cert.PDF), nil
}

// GetPortfolio returns the authenticated portfolio projection.
func (s *ProfileService) GetPortfolio(ctx context.Context, registrationNo string) (*dto.PortfolioResponse, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, err
	}
	return &dto.PortfolioResponse{
		Name:           student.Name,
		RollNumber:     student.RollNumber,
		RegistrationNo: student.RegistrationNo,
		EmailID:        student.EmailID,
		MobileNo:       student.MobileNo,
		Specialization: student.Specialization,
		Skills:         student.Skills,
		Experience:     student.Experience,
		Projects:       student.Projects,
		Education:      student.Education,
		Certifications: student.Certifications,
		CV:             student.CV,
	}, nil
}

// GetPublicPortfolio returns the shareable projection with contact details
// and the CV path stripped.
func (s *ProfileService) GetPublicPortfolio(ctx context.Context, registrationNo string) (*dto.PublicPortfolioResponse, error) {
	student, err := s.studentRepo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return nil, err
	}
	return &dto.PublicPortfolioResponse{
		Name:           student.Name,
		RegistrationNo: student.RegistrationNo,
		Specialization: student.Specialization,
		Skills:         student.Skills,
		Projects:       student.Projects,
		Certifications: student.Certifications,
	}, nil
}
