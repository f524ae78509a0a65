package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.DirectMessage) error
	GetConversation(userID, partnerID uint, params models.ListParams) ([]models.DirectMessage, int64, error)
	MarkConversationRead(recipientID, senderID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.DirectMessage) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) GetConversation(userID, partnerID uint, params models.ListParams) ([]models.DirectMessage, int64, error) {
	var messages []models.DirectMessage
	var total int64

	query := r.db.Model(&models.DirectMessage{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, partnerID, partnerID, userID).
		Preload("Sender").Preload("Recipient")
	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(params.Limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *messageRepository) MarkConversationRead(recipientID, senderID uint) error {
	return r.db.Model(&models.DirectMessage{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", recipientID, senderID, false).
		Update("is_read", true).Error
}
