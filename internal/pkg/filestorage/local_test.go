package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile returned error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing multipart content returned error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer returned error: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm returned error: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestSaveRoundTrip(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}

	saved, err := storage.Save(uploadHeader(t, "resume.pdf", "pdf bytes"), "cv", "123456789", "cv")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(saved.RelativePath, "cv"+string(filepath.Separator)) {
		t.Errorf("RelativePath = %q, want it under the cv subdirectory", saved.RelativePath)
	}
	if !strings.Contains(saved.Filename, "123456789") || !strings.HasSuffix(saved.Filename, "resume.pdf") {
		t.Errorf("Filename = %q, want user id and original name embedded", saved.Filename)
	}

	abs, err := storage.FullPath(saved.RelativePath)
	if err != nil {
		t.Fatalf("FullPath returned error: %v", err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("reading saved file returned error: %v", err)
	}
	if string(content) != "pdf bytes" {
		t.Errorf("saved content = %q, want %q", content, "pdf bytes")
	}
}

func TestSaveRejectsDisallowedExtensions(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}

	cases := []struct {
		filename     string
		subdirectory string
	}{
		{"payload.exe", "cv"},
		{"notes.txt", "cv"},
		{"archive.zip", "certifications"},
		{"noextension", "announcements"},
	}
	for _, tc := range cases {
		_, err := storage.Save(uploadHeader(t, tc.filename, "data"), tc.subdirectory, "u1", "")
		if !errors.Is(err, apperrors.ErrFileTypeInvalid) {
			t.Errorf("Save(%q, %q) error = %v, want ErrFileTypeInvalid", tc.filename, tc.subdirectory, err)
		}
	}

	if _, err := storage.Save(nil, "cv", "u1", ""); !errors.Is(err, apperrors.ErrNoFileProvided) {
		t.Errorf("Save(nil) error = %v, want ErrNoFileProvided", err)
	}
}

func TestAllowedForSubdirectory(t *testing.T) {
	if !AllowedForSubdirectory("messages")["png"] || !AllowedForSubdirectory("messages")["pdf"] {
		t.Error("message attachments should accept png and pdf")
	}
	if AllowedForSubdirectory("messages")["exe"] {
		t.Error("message attachments must not accept exe")
	}

	unknown := AllowedForSubdirectory("unknown")
	if len(unknown) != 1 || !unknown["pdf"] {
		t.Errorf("unknown subdirectory allow-list = %v, want pdf only", unknown)
	}
}

func TestFullPathRejectsTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}

	for _, relative := range []string{"../outside.pdf", "cv/../../etc/passwd"} {
		if _, err := storage.FullPath(relative); !errors.Is(err, apperrors.ErrInvalidFilePath) {
			t.Errorf("FullPath(%q) error = %v, want ErrInvalidFilePath", relative, err)
		}
	}

	if _, err := storage.FullPath(""); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Errorf("FullPath(\"\") error = %v, want ErrFileNotFound", err)
	}
	if _, err := storage.FullPath("cv/missing.pdf"); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Errorf("FullPath on missing file error = %v, want ErrFileNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}

	saved, err := storage.Save(uploadHeader(t, "cert.png", "img"), "certifications", "u1", "cert")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := storage.Delete(saved.RelativePath); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := storage.FullPath(saved.RelativePath); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Errorf("FullPath after delete error = %v, want ErrFileNotFound", err)
	}
	if err := storage.Delete(saved.RelativePath); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Errorf("second Delete error = %v, want ErrFileNotFound", err)
	}
}
