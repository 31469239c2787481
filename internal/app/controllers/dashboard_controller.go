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
)

// DashboardController handles the role-dispatched dashboard endpoint
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// Get dispatches on the caller's role: students get their home page
// payload, faculty get cohort statistics and admins get portal totals.
func (c *DashboardController) Get(ctx *gin.Context) {
	switch middleware.Role(ctx) {
	case models.RoleStudent:
		dashboard, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), middleware.Identity(ctx))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dashboard)
	case models.RoleFaculty:
		stats, err := c.dashboardService.FacultyDashboard(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"role": models.RoleFaculty, "stats": stats})
	case models.RoleAdmin:
		stats, err := c.dashboardService.AdminDashboard(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"role": models.RoleAdmin, "stats": stats})
	default:
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("unknown role"))
	}
}

// Stats returns only the count block for the caller's role.
func (c *DashboardController) Stats(ctx *gin.Context) {
	switch middleware.Role(ctx) {
	case models.RoleStudent:
		stats, err := c.dashboardService.StudentStats(ctx.Request.Context(), middleware.Identity(ctx))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, stats)
	case models.RoleFaculty:
		stats, err := c.dashboardService.FacultyDashboard(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, stats)
	case models.RoleAdmin:
		stats, err := c.dashboardService.AdminDashboard(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, stats)
	default:
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("unknown role"))
	}
}

// UpcomingDeadlines returns active postings closing soonest.
func (c *DashboardController) UpcomingDeadlines(ctx *gin.Context) {
	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "10"), 10, 64)
	companies, err := c.dashboardService.UpcomingDeadlines(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}
