package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type MessageService interface {
	Send(caller *models.User, req models.SendMessageRequest) (*models.DirectMessage, error)
	GetConversation(caller *models.User, partnerID uint, params models.ListParams) ([]models.DirectMessage, int64, error)
	MarkConversationRead(caller *models.User, partnerID uint) error
}

type messageService struct {
	messageRepo   repositories.MessageRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifications NotificationService) MessageService {
	return &messageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *messageService) Send(caller *models.User, req models.SendMessageRequest) (*models.DirectMessage, error) {
	if req.RecipientID == caller.ID {
		return nil, apperr.Validation("cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipient not found")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load recipient", err)
	}

	message := &models.DirectMessage{
		SenderID:    caller.ID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to send message", err)
	}

	// Best-effort; the message is delivered either way.
	s.notifications.FanOutMessage(caller, message)

	return message, nil
}

func (s *messageService) GetConversation(caller *models.User, partnerID uint, params models.ListParams) ([]models.DirectMessage, int64, error) {
	messages, total, err := s.messageRepo.GetConversation(caller.ID, partnerID, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load conversation", err)
	}
	return messages, total, nil
}

func (s *messageService) MarkConversationRead(caller *models.User, partnerID uint) error {
	if err := s.messageRepo.MarkConversationRead(caller.ID, partnerID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to mark conversation read", err)
	}
	return nil
}
