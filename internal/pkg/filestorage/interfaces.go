package filestorage

import "mime/multipart"

// SavedFile describes a stored upload.
type SavedFile struct {
	// RelativePath is the path under the upload root, stored in documents.
	RelativePath string
	// Filename is the generated on-disk name.
	Filename string
}

// FileStorage defines the interface for upload storage operations.
type FileStorage interface {
	// Save validates and persists an upload into a subdirectory. The user id
	// and prefix become part of the generated filename.
	Save(fileHeader *multipart.FileHeader, subdirectory, userID, prefix string) (*SavedFile, error)

	// FullPath resolves a stored relative path to an absolute path inside
	// the upload root, or fails if the path escapes the root or is missing.
	FullPath(relativePath string) (string, error)

	// Delete removes a stored file by its relative path.
	Delete(relativePath string) error
}
