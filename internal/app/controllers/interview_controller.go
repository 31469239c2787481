package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// InterviewController handles interview endpoints
type InterviewController struct {
	interviewService *services.InterviewService
	logger           zerolog.Logger
}

// NewInterviewController creates a new InterviewController
func NewInterviewController(interviewService *services.InterviewService, logger zerolog.Logger) *InterviewController {
	return &InterviewController{interviewService: interviewService, logger: logger}
}

// Schedule books an interview slot for a student.
func (c *InterviewController) Schedule(ctx *gin.Context) {
	var req dto.InterviewCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	interview, err := c.interviewService.Schedule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, interview)
}

// Mine returns the caller's interviews.
func (c *InterviewController) Mine(ctx *gin.Context) {
	interviews, err := c.interviewService.ForStudent(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"interviews": interviews})
}

// List returns a filtered page of interviews for the admin view.
func (c *InterviewController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.interviewService.List(ctx.Request.Context(), ctx.Query("status"), ctx.Query("student_id"), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// UpdateStatus transitions one interview.
func (c *InterviewController) UpdateStatus(ctx *gin.Context) {
	var req dto.InterviewStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	if err := c.interviewService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "interview status updated"})
}

// Delete removes an interview slot.
func (c *InterviewController) Delete(ctx *gin.Context) {
	if err := c.interviewService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "interview deleted"})
}
