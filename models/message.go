package models

import "time"

type DirectMessage struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	Sender      *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	Recipient   *User     `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}
