package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
)

// FileController serves uploaded documents
type FileController struct {
	fileService *services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{fileService: fileService, logger: logger}
}

// Download streams an uploaded file. The path parameter is the relative
// path stored on the owning document; traversal outside the upload root is
// rejected before the filesystem is touched.
func (c *FileController) Download(ctx *gin.Context) {
	fullPath, err := c.fileService.Resolve(ctx.Param("filepath"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.File(fullPath)
}
