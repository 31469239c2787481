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

// MessageController handles direct message endpoints
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{messageService: messageService, logger: logger}
}

// Send delivers a message to another student. Accepts multipart form data
// with an optional attachment, or a plain JSON body.
func (c *MessageController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	file, fileErr := ctx.FormFile("attachment")
	if fileErr == nil || ctx.ContentType() == "multipart/form-data" {
		req.RecipientID = ctx.PostForm("recipient_id")
		req.Subject = ctx.PostForm("subject")
		req.Content = ctx.PostForm("content")
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
			return
		}
		file = nil
	}

	message, err := c.messageService.Send(ctx.Request.Context(), middleware.Identity(ctx), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "message sent", "data": message})
}

// List returns every message the caller sent or received.
func (c *MessageController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.messageService.All(ctx.Request.Context(), middleware.Identity(ctx), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Get returns one message; opening a received message marks it read.
func (c *MessageController) Get(ctx *gin.Context) {
	message, err := c.messageService.Get(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, message)
}

// Inbox returns the caller's received messages.
func (c *MessageController) Inbox(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.messageService.Inbox(ctx.Request.Context(), middleware.Identity(ctx), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Sent returns the caller's sent messages.
func (c *MessageController) Sent(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.messageService.Sent(ctx.Request.Context(), middleware.Identity(ctx), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// MarkRead flags one received message as read.
func (c *MessageController) MarkRead(ctx *gin.Context) {
	if err := c.messageService.MarkRead(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "message marked as read"})
}

// Delete removes one of the caller's messages.
func (c *MessageController) Delete(ctx *gin.Context) {
	if err := c.messageService.Delete(ctx.Request.Context(), middleware.Identity(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "message deleted"})
}
