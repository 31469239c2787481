package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/logger"
)

// Extension allow-lists keyed by subdirectory. Unknown subdirectories fall
// back to PDF only.
var allowedExtensions = map[string]map[string]bool{
	"cv":             {"pdf": true, "doc": true, "docx": true},
	"certifications": {"pdf": true, "jpg": true, "jpeg": true, "png": true},
	"announcements":  {"pdf": true, "doc": true, "docx": true, "jpg": true, "jpeg": true, "png": true, "txt": true},
	"messages":       {"pdf": true, "doc": true, "docx": true, "jpg": true, "jpeg": true, "png": true, "txt": true},
}

var defaultExtensions = map[string]bool{"pdf": true}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// LocalStorage saves uploads to the local filesystem under a single root.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, pre-creating
// the known subdirectories.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	for sub := range allowedExtensions {
		dir := filepath.Join(basePath, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("path", basePath).Msg("Upload directories ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// AllowedForSubdirectory returns the accepted extensions for a subdirectory.
func AllowedForSubdirectory(subdirectory string) map[string]bool {
	if exts, ok := allowedExtensions[subdirectory]; ok {
		return exts
	}
	return defaultExtensions
}

// sanitizeFilename strips path components and unsafe characters from a
// client-supplied filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return name
}

// Save validates the extension against the subdirectory allow-list, builds a
// collision-resistant name (prefix_userid_uuid8_originalname) and writes the
// file under basePath/subdirectory.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subdirectory, userID, prefix string) (*SavedFile, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return nil, apperrors.ErrNoFileProvided
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if ext == "" || !AllowedForSubdirectory(subdirectory)[ext] {
		return nil, apperrors.ErrFileTypeInvalid
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	parts := []string{}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if userID != "" {
		parts = append(parts, userID)
	}
	parts = append(parts, uuid.New().String()[:8], sanitizeFilename(fileHeader.Filename))
	filename := strings.Join(parts, "_")

	dir := filepath.Join(ls.basePath, subdirectory)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dstPath := filepath.Join(dir, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write uploaded file")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	relative := filepath.Join(subdirectory, filename)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relative).Msg("File saved")

	return &SavedFile{RelativePath: relative, Filename: filename}, nil
}

// FullPath resolves a stored relative path to an absolute path, rejecting
// anything that escapes the upload root.
func (ls *LocalStorage) FullPath(relativePath string) (string, error) {
	if relativePath == "" {
		return "", apperrors.ErrFileNotFound
	}

	abs := filepath.Join(ls.basePath, filepath.Clean(relativePath))
	root, err := filepath.Abs(ls.basePath)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", apperrors.ErrInvalidFilePath
	}

	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return "", apperrors.ErrFileNotFound
	}

	return resolved, nil
}

// Delete removes a stored file by relative path. Paths outside the upload
// root are rejected before removal.
func (ls *LocalStorage) Delete(relativePath string) error {
	abs, err := ls.FullPath(relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil {
		logger.Error().Err(err).Str("path", abs).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", abs).Msg("File deleted")
	return nil
}
