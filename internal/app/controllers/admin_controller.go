package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// AdminController handles student administration and analytics endpoints
type AdminController struct {
	adminService     *services.AdminService
	analyticsService *services.AnalyticsService
	logger           zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, analyticsService *services.AnalyticsService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService:     adminService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// ListStudents returns a filtered page of students.
func (c *AdminController) ListStudents(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)

	var placed *bool
	if raw := ctx.Query("placed"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err == nil {
			placed = &value
		}
	}

	result, err := c.adminService.ListStudents(ctx.Request.Context(), placed, ctx.Query("specialization"), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetStudent returns one student's full record.
func (c *AdminController) GetStudent(ctx *gin.Context) {
	student, err := c.adminService.GetStudent(ctx.Request.Context(), ctx.Param("registration_no"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// UpdateStudentRecord sets admin-only academic fields on a student.
func (c *AdminController) UpdateStudentRecord(ctx *gin.Context) {
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.adminService.UpdateAcademicRecord(ctx.Request.Context(), ctx.Param("registration_no"), updates); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "student record updated"})
}

// AnalyticsOverview returns portal-wide totals.
func (c *AdminController) AnalyticsOverview(ctx *gin.Context) {
	overview, err := c.analyticsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

// AnalyticsTimeline returns daily application counts for charting.
func (c *AdminController) AnalyticsTimeline(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	timeline, err := c.analyticsService.Timeline(ctx.Request.Context(), days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, timeline)
}

// AnalyticsPopularCompanies returns the most applied-to postings.
func (c *AdminController) AnalyticsPopularCompanies(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	popular, err := c.analyticsService.PopularCompanies(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"companies": popular})
}
