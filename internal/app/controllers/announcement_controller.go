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

// AnnouncementController handles announcement endpoints
type AnnouncementController struct {
	announcementService *services.AnnouncementService
	logger              zerolog.Logger
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService *services.AnnouncementService, logger zerolog.Logger) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService, logger: logger}
}

// Create posts an announcement. Accepts multipart form data with an
// optional attachment, or a plain JSON body.
func (c *AnnouncementController) Create(ctx *gin.Context) {
	var req dto.AnnouncementCreateRequest
	file, fileErr := ctx.FormFile("file")
	if fileErr == nil || ctx.ContentType() == "multipart/form-data" {
		req.Title = ctx.PostForm("title")
		req.Content = ctx.PostForm("content")
		req.Important, _ = strconv.ParseBool(ctx.PostForm("important"))
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
			return
		}
		file = nil
	}

	announcement, err := c.announcementService.Create(ctx.Request.Context(), middleware.Identity(ctx), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, announcement)
}

// List returns a page of announcements.
func (c *AnnouncementController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.announcementService.List(ctx.Request.Context(), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Get returns one announcement.
func (c *AnnouncementController) Get(ctx *gin.Context) {
	announcement, err := c.announcementService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, announcement)
}

// DownloadAttachment streams an announcement's attachment.
func (c *AnnouncementController) DownloadAttachment(ctx *gin.Context) {
	path, name, err := c.announcementService.DownloadAttachment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, name)
}

// Delete removes an announcement.
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	if err := c.announcementService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "announcement deleted"})
}
