package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// CompanyController handles company posting and application endpoints
type CompanyController struct {
	companyService *services.CompanyService
	logger         zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService, logger zerolog.Logger) *CompanyController {
	return &CompanyController{companyService: companyService, logger: logger}
}

// Create adds a job posting.
func (c *CompanyController) Create(ctx *gin.Context) {
	var req dto.CompanyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	company, err := c.companyService.CreateCompany(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, company)
}

// List returns a filtered page of postings. Students see only active ones;
// admins see everything.
func (c *CompanyController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	minStipend, _ := strconv.ParseInt(ctx.Query("min_stipend"), 10, 64)
	postedDays, _ := strconv.Atoi(ctx.Query("posted_days"))

	filter := &dto.CompanyFilter{
		JobType:    ctx.Query("job_type"),
		WorkPlace:  ctx.Query("work_place"),
		Duration:   ctx.Query("duration"),
		MinStipend: minStipend,
		PostedDays: postedDays,
		ActiveOnly: middleware.Role(ctx) != models.RoleAdmin,
	}

	result, err := c.companyService.ListCompanies(ctx.Request.Context(), filter, page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Get returns one posting.
func (c *CompanyController) Get(ctx *gin.Context) {
	company, err := c.companyService.GetCompany(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, company)
}

// Update applies a partial update to a posting.
func (c *CompanyController) Update(ctx *gin.Context) {
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.companyService.UpdateCompany(ctx.Request.Context(), ctx.Param("id"), updates); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "company updated"})
}

// Deactivate soft-deletes a posting.
func (c *CompanyController) Deactivate(ctx *gin.Context) {
	if err := c.companyService.DeactivateCompany(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "company deactivated"})
}

// Apply submits the caller's application to a posting.
func (c *CompanyController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	// The body is optional; an empty application is still valid.
	_ = ctx.ShouldBindJSON(&req)

	application, err := c.companyService.Apply(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "application submitted",
		"application": application,
	})
}

// MyApplications returns the caller's applications.
func (c *CompanyController) MyApplications(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.companyService.MyApplications(ctx.Request.Context(), middleware.Identity(ctx), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ApplicationStatus returns the status of one of the caller's applications.
func (c *CompanyController) ApplicationStatus(ctx *gin.Context) {
	view, err := c.companyService.ApplicationStatus(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// CompanyApplicationStatus returns the status of the caller's application
// to the given company.
func (c *CompanyController) CompanyApplicationStatus(ctx *gin.Context) {
	view, err := c.companyService.CompanyApplicationStatus(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// CompanyApplications returns every application to one posting.
func (c *CompanyController) CompanyApplications(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.companyService.CompanyApplications(ctx.Request.Context(), ctx.Param("id"), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListApplications returns a page of all applications for the admin view.
func (c *CompanyController) ListApplications(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.companyService.ListApplications(ctx.Request.Context(), ctx.Query("status"), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// UpdateApplicationStatus transitions one application.
func (c *CompanyController) UpdateApplicationStatus(ctx *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	application, err := c.companyService.UpdateApplicationStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":     "status updated",
		"application": application,
	})
}
