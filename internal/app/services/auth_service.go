package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/auth"
	"github.com/savi/placement-portal/internal/pkg/email"
	"github.com/savi/placement-portal/internal/pkg/validation"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	studentRepo *repositories.StudentRepository
	facultyRepo *repositories.FacultyRepository
	adminRepo   *repositories.AdminRepository
	jwtService  *auth.JWTService
	mailer      email.Mailer
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	facultyRepo *repositories.FacultyRepository,
	adminRepo *repositories.AdminRepository,
	jwtService *auth.JWTService,
	mailer email.Mailer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		mailer:      mailer,
		logger:      logger,
	}
}

// Signup registers a new student account. The registration number is the
// permanent identity; email and registration number must both be unused.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.Student, string, error) {
	registrationNo := strings.TrimSpace(req.RegistrationNo)
	email := strings.ToLower(strings.TrimSpace(req.EmailAddress()))
	name := strings.TrimSpace(req.Name)

	if !validation.ValidRegistrationNo(registrationNo) {
		return nil, "", apperrors.ErrInvalidRegistrationNo
	}
	if !validation.ValidEmail(email) {
		return nil, "", apperrors.NewBadRequestError("invalid email format")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, "", apperrors.NewBadRequestError("password must be at least 8 characters with a letter and a digit")
	}
	if name == "" {
		return nil, "", apperrors.NewBadRequestError("name is required")
	}

	if taken, err := s.studentRepo.ExistsByRegistrationNo(ctx, registrationNo); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperrors.ErrRegistrationNoAlreadyExists
	}
	if taken, err := s.studentRepo.ExistsByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	student := models.NewStudentSkeleton(registrationNo, email, hash, name)
	if roll := strings.TrimSpace(req.RollNumber); roll != "" {
		student.RollNumber = roll
	}
	student.MobileNo = strings.TrimSpace(req.MobileNo)

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, "", err
	}

	token, _, err := s.jwtService.GenerateToken(student.RegistrationNo, models.RoleStudent)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	s.logger.Info().Str("registration_no", registrationNo).Msg("Student registered")
	return student, token, nil
}

// Login authenticates by email across the student and faculty collections,
// probing students first. The issued token embeds the resolved role.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, int, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", 0, "", apperrors.NewBadRequestError("email and password are required")
	}

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err == nil {
		if !auth.CheckPassword(student.Password, password) {
			return "", 0, "", apperrors.ErrInvalidCredentials
		}
		token, expiresIn, err := s.jwtService.GenerateToken(student.RegistrationNo, models.RoleStudent)
		if err != nil {
			return "", 0, "", fmt.Errorf("generating token: %w", err)
		}
		return token, expiresIn, models.RoleStudent, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return "", 0, "", err
	}

	faculty, err := s.facultyRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return "", 0, "", apperrors.ErrInvalidCredentials
		}
		return "", 0, "", err
	}
	if !auth.CheckPassword(faculty.Password, password) {
		return "", 0, "", apperrors.ErrInvalidCredentials
	}
	token, expiresIn, err := s.jwtService.GenerateToken(faculty.EmailID, models.RoleFaculty)
	if err != nil {
		return "", 0, "", fmt.Errorf("generating token: %w", err)
	}
	return token, expiresIn, models.RoleFaculty, nil
}

// AdminLogin authenticates an admin by username and stamps last_login.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, int, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", 0, apperrors.NewBadRequestError("username and password are required")
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, err
	}
	if !admin.IsActive {
		return "", 0, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(admin.Password, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(admin.Username, models.RoleAdmin)
	if err != nil {
		return "", 0, fmt.Errorf("generating token: %w", err)
	}

	if err := s.adminRepo.TouchLastLogin(ctx, admin.Username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("Failed to stamp last login")
	}
	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return token, expiresIn, nil
}

// ResolveRole determines an account's role by probing the student,
// faculty and admin collections in order. It backs tokens that carry an
// identity but no role claim.
func (s *AuthService) ResolveRole(ctx context.Context, identity string) (string, error) {
	if _, err := s.studentRepo.GetByRegistrationNo(ctx, identity); err == nil {
		return models.RoleStudent, nil
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return "", err
	}

	if _, err := s.facultyRepo.GetByIdentity(ctx, identity); err == nil {
		return models.RoleFaculty, nil
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return "", err
	}

	if _, err := s.adminRepo.GetByUsername(ctx, identity); err == nil {
		return models.RoleAdmin, nil
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return "", err
	}

	return "", apperrors.ErrTokenInvalid
}

// RequestPasswordReset resets the account to a temporary password and
// emails it to the student. The caller-visible outcome never reveals
// whether the email exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" {
		return
	}

	student, err := s.studentRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
		return
	}

	tempPassword, err := email.GenerateTempPassword(12)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate temporary password")
		return
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash temporary password")
		return
	}
	if err := s.studentRepo.UpdatePassword(ctx, student.RegistrationNo, hash); err != nil {
		s.logger.Error().Err(err).Str("registration_no", student.RegistrationNo).
			Msg("Failed to store temporary password")
		return
	}

	if err := s.mailer.SendPasswordResetEmail(student.EmailID, student.Name, tempPassword); err != nil {
		s.logger.Error().Err(err).Str("email", student.EmailID).
			Msg("Failed to send password reset email")
		return
	}
	s.logger.Info().Str("registration_no", student.RegistrationNo).
		Time("requested_at", time.Now().UTC()).Msg("Password reset issued")
}
