package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/filestorage"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// AnnouncementService handles portal-wide announcements
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
	notifier         *NotificationService
	storage          filestorage.FileStorage
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementRepo *repositories.AnnouncementRepository,
	notifier *NotificationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		notifier:         notifier,
		storage:          storage,
		logger:           logger,
	}
}

// Create posts an announcement, stores the attachment when one was
// uploaded and broadcasts a notification to every student.
func (s *AnnouncementService) Create(ctx context.Context, postedBy string, req *dto.AnnouncementCreateRequest, attachment *multipart.FileHeader) (*models.Announcement, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewBadRequestError("title and content are required")
	}

	announcement := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Date:      time.Now().UTC(),
		PostedBy:  postedBy,
		Important: req.Important,
	}
	if attachment != nil {
		saved, err := s.storage.Save(attachment, "announcements", postedBy, "announcement")
		if err != nil {
			return nil, err
		}
		announcement.Attachment = saved.RelativePath
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(ctx, "New announcement: "+announcement.Title,
		announcement.Title, models.NotificationAnnouncement, announcement.ID.Hex())

	s.logger.Info().Str("title", announcement.Title).Bool("important", announcement.Important).
		Msg("Announcement posted")
	return announcement, nil
}

// AnnouncementList is one page of announcements.
type AnnouncementList struct {
	Announcements []models.Announcement `json:"announcements"`
	helpers.Pagination
}

// List returns a page of announcements, important first then newest first.
func (s *AnnouncementService) List(ctx context.Context, page, perPage int) (*AnnouncementList, error) {
	announcements, total, err := s.announcementRepo.List(ctx, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return &AnnouncementList{
		Announcements: announcements,
		Pagination:    helpers.NewPagination(total, page, perPage),
	}, nil
}

// Get returns one announcement.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.announcementRepo.GetByID(ctx, oid)
}

// DownloadAttachment resolves an announcement's attachment for streaming,
// returning the absolute path and a friendly filename.
func (s *AnnouncementService) DownloadAttachment(ctx context.Context, id string) (string, string, error) {
	announcement, err := s.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	if announcement.Attachment == "" {
		return "", "", apperrors.ErrFileNotFound
	}
	abs, err := s.storage.FullPath(announcement.Attachment)
	if err != nil {
		return "", "", err
	}
	name := strings.ReplaceAll(strings.TrimSpace(announcement.Title), " ", "_") +
		strings.ToLower(filepath.Ext(announcement.Attachment))
	return abs, name, nil
}

// Delete removes an announcement and its attachment file.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	announcement, err := s.announcementRepo.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.announcementRepo.Delete(ctx, oid); err != nil {
		return err
	}
	if announcement.Attachment != "" {
		if err := s.storage.Delete(announcement.Attachment); err != nil {
			s.logger.Warn().Err(err).Str("path", announcement.Attachment).
				Msg("Failed to remove announcement attachment")
		}
	}
	return nil
}
