package services

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/filestorage"
)

// FileService resolves stored upload paths for download
type FileService struct {
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(storage filestorage.FileStorage, logger zerolog.Logger) *FileService {
	return &FileService{storage: storage, logger: logger}
}

// Resolve maps a stored relative path onto its absolute location,
// rejecting empty and traversal paths.
func (s *FileService) Resolve(relativePath string) (string, error) {
	relativePath = strings.TrimPrefix(relativePath, "/")
	if relativePath == "" {
		return "", apperrors.ErrInvalidFilePath
	}
	return s.storage.FullPath(relativePath)
}
