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

// NotificationController handles notification feed endpoints
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

// List returns a page of the caller's notifications. The read query
// parameter ("true"/"false") narrows the page.
func (c *NotificationController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)

	var read *bool
	if raw := ctx.Query("read"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid read filter"))
			return
		}
		read = &value
	}

	feed, err := c.notificationService.List(ctx.Request.Context(), middleware.Identity(ctx), read, page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, feed)
}

// Get returns one notification and marks it read.
func (c *NotificationController) Get(ctx *gin.Context) {
	notification, err := c.notificationService.Get(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notification)
}

// UnreadCount returns the caller's unread notification count.
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead flags one notification as read.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	if err := c.notificationService.MarkRead(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "notification marked as read"})
}

// MarkAllRead flags every unread notification as read.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	updated, err := c.notificationService.MarkAllRead(ctx.Request.Context(), middleware.Identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "notifications marked as read", "updated": updated})
}
