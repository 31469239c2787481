package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
)

// ProfileController handles profile and portfolio endpoints
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{profileService: profileService, logger: logger}
}

// GetProfile returns the caller's full profile.
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	student, err := c.profileService.GetProfile(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// UpdateProfile applies a partial update to the caller's profile.
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.profileService.UpdateProfile(ctx.Request.Context(), middleware.Identity(ctx), updates); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "profile updated"})
}

// UpdateSkills replaces the caller's skill lists.
func (c *ProfileController) UpdateSkills(ctx *gin.Context) {
	var req dto.SkillsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.profileService.UpdateSkills(ctx.Request.Context(), middleware.Identity(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "skills updated"})
}

// AddExperience appends a job entry to the caller's profile.
func (c *ProfileController) AddExperience(ctx *gin.Context) {
	var req dto.ExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.profileService.AddExperience(ctx.Request.Context(), middleware.Identity(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "experience added"})
}

// indexParam parses a positional array index from the path.
func indexParam(ctx *gin.Context, name string) (int, bool) {
	index, err := strconv.Atoi(ctx.Param(name))
	if err != nil || index < 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid index"))
		return 0, false
	}
	return index, true
}

// UpdateExperience replaces the job entry at the given position.
func (c *ProfileController) UpdateExperience(ctx *gin.Context) {
	index, ok := indexParam(ctx, "index")
	if !ok {
		return
	}
	var req dto.ExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.profileService.UpdateExperience(ctx.Request.Context(), middleware.Identity(ctx), index, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "experience updated"})
}

// DeleteExperience removes the job entry at the given position.
func (c *ProfileController) DeleteExperience(ctx *gin.Context) {
	index, ok := indexParam(ctx, "index")
	if !ok {
		return
	}

	if err := c.profileService.DeleteExperience(ctx.Request.Context(), middleware.Identity(ctx), index); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "experience removed"})
}

// AddProject appends a portfolio project to the caller's profile.
func (c *ProfileController) AddProject(ctx *gin.Context) {
	var req dto.ProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.profileService.AddProject(ctx.Request.Context(), middleware.Identity(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "project added"})
}

// AddCertification appends a certificate, reading the optional document
// from a multipart form.
func (c *ProfileController) AddCertification(ctx *gin.Context) {
	req := dto.CertificationRequest{
		CertificateName:  ctx.PostForm("certificate_name"),
		InstituteName:    ctx.PostForm("institute_name"),
		VerificationLink: ctx.PostForm("verification_link"),
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		// JSON fallback for entries without a document.
		if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil && req.CertificateName == "" {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
			return
		}
		file = nil
	}

	if err := c.profileService.AddCertification(ctx.Request.Context(), middleware.Identity(ctx), &req, file); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "certification added"})
}

// UploadCertificationFile attaches a document to an existing certification.
func (c *ProfileController) UploadCertificationFile(ctx *gin.Context) {
	index, ok := indexParam(ctx, "index")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("no file provided"))
		return
	}

	path, err := c.profileService.UploadCertificationFile(ctx.Request.Context(), middleware.Identity(ctx), index, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "certificate uploaded", "pdf": path})
}

// DownloadCV streams the caller's stored CV.
func (c *ProfileController) DownloadCV(ctx *gin.Context) {
	path, name, err := c.profileService.DownloadCV(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, name)
}

// DownloadCertification streams one of the caller's certificate documents.
func (c *ProfileController) DownloadCertification(ctx *gin.Context) {
	index, ok := indexParam(ctx, "index")
	if !ok {
		return
	}

	path, name, err := c.profileService.DownloadCertification(ctx.Request.Context(), middleware.Identity(ctx), index)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, name)
}

// UploadCV stores a new CV for the caller.
func (c *ProfileController) UploadCV(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("no file provided"))
		return
	}

	path, err := c.profileService.UploadCV(ctx.Request.Context(), middleware.Identity(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "cv uploaded", "cv": path})
}

// GetPortfolio returns the caller's portfolio projection.
func (c *ProfileController) GetPortfolio(ctx *gin.Context) {
	portfolio, err := c.profileService.GetPortfolio(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, portfolio)
}

// GetPublicPortfolio returns the shareable portfolio of any student.
func (c *ProfileController) GetPublicPortfolio(ctx *gin.Context) {
	portfolio, err := c.profileService.GetPublicPortfolio(ctx.Request.Context(), ctx.Param("registration_no"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, portfolio)
}
