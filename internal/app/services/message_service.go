package services

import (
	"context"
	"errors"
	"mime/multipart"
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

// MessageService handles direct messages between students
type MessageService struct {
	messageRepo *repositories.MessageRepository
	studentRepo *repositories.StudentRepository
	notifier    *NotificationService
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo *repositories.MessageRepository,
	studentRepo *repositories.StudentRepository,
	notifier *NotificationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		storage:     storage,
		logger:      logger,
	}
}

// Send delivers a message to another student and notifies them, storing
// the attachment when one was uploaded. Messages to oneself or to unknown
// registration numbers are rejected.
func (s *MessageService) Send(ctx context.Context, senderID string, req *dto.SendMessageRequest, attachment *multipart.FileHeader) (*models.Message, error) {
	recipientID := strings.TrimSpace(req.RecipientID)
	if recipientID == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewBadRequestError("recipient_id and content are required")
	}
	if recipientID == senderID {
		return nil, apperrors.NewBadRequestError("cannot send a message to yourself")
	}

	if _, err := s.studentRepo.GetByRegistrationNo(ctx, recipientID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     req.Subject,
		Content:     req.Content,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}
	if attachment != nil {
		saved, err := s.storage.Save(attachment, "messages", senderID, "message")
		if err != nil {
			return nil, err
		}
		message.Attachment = saved.RelativePath
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		if message.Attachment != "" {
			if cleanupErr := s.storage.Delete(message.Attachment); cleanupErr != nil {
				s.logger.Warn().Err(cleanupErr).Str("path", message.Attachment).
					Msg("Failed to remove orphaned attachment")
			}
		}
		return nil, err
	}

	s.notifier.Notify(ctx, recipientID, "New message",
		"You have a new message from "+senderID+".",
		models.NotificationMessage, message.ID.Hex())

	return message, nil
}

// MessageList is one page of messages.
type MessageList struct {
	Messages []models.Message `json:"messages"`
	helpers.Pagination
}

// All returns a page of every message the student sent or received.
func (s *MessageService) All(ctx context.Context, studentID string, page, perPage int) (*MessageList, error) {
	messages, total, err := s.messageRepo.ListFor(ctx, studentID, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return newMessageList(messages, total, page, perPage), nil
}

// Inbox returns a page of the student's received messages.
func (s *MessageService) Inbox(ctx context.Context, studentID string, page, perPage int) (*MessageList, error) {
	messages, total, err := s.messageRepo.ListInbox(ctx, studentID, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return newMessageList(messages, total, page, perPage), nil
}

// Sent returns a page of the student's sent messages.
func (s *MessageService) Sent(ctx context.Context, studentID string, page, perPage int) (*MessageList, error) {
	messages, total, err := s.messageRepo.ListSent(ctx, studentID, helpers.Skip(page, perPage), int64(perPage))
	if err != nil {
		return nil, err
	}
	return newMessageList(messages, total, page, perPage), nil
}

func newMessageList(messages []models.Message, total int64, page, perPage int) *MessageList {
	if messages == nil {
		messages = []models.Message{}
	}
	return &MessageList{
		Messages:   messages,
		Pagination: helpers.NewPagination(total, page, perPage),
	}
}

// Get returns one message the student is party to. Opening a received
// message marks it read.
func (s *MessageService) Get(ctx context.Context, studentID, messageID string) (*models.Message, error) {
	oid, err := parseObjectID(messageID)
	if err != nil {
		return nil, err
	}
	message, err := s.messageRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if message.SenderID != studentID && message.RecipientID != studentID {
		return nil, apperrors.ErrMessageNotFound
	}
	if message.RecipientID == studentID && !message.Read {
		if err := s.messageRepo.MarkRead(ctx, oid, studentID); err != nil {
			s.logger.Warn().Err(err).Str("message", messageID).Msg("Failed to mark message read")
		} else {
			message.Read = true
		}
	}
	return message, nil
}

// MarkRead flags a received message as read.
func (s *MessageService) MarkRead(ctx context.Context, studentID, messageID string) error {
	oid, err := parseObjectID(messageID)
	if err != nil {
		return err
	}
	return s.messageRepo.MarkRead(ctx, oid, studentID)
}

// Delete removes a message the student sent or received, along with its
// stored attachment.
func (s *MessageService) Delete(ctx context.Context, studentID, messageID string) error {
	oid, err := parseObjectID(messageID)
	if err != nil {
		return err
	}
	message, err := s.messageRepo.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.messageRepo.Delete(ctx, oid, studentID); err != nil {
		return err
	}
	if message.Attachment != "" {
		if err := s.storage.Delete(message.Attachment); err != nil {
			s.logger.Warn().Err(err).Str("path", message.Attachment).
				Msg("Failed to delete message attachment")
		}
	}
	return nil
}
