package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifyCommentReply      NotificationType = "comment_reply"
	NotifyFollowedTopicPost NotificationType = "followed_topic_post"
	NotifyFollowedUserPost  NotificationType = "followed_user_post"
	NotifyMessage           NotificationType = "message"
	NotifyReport            NotificationType = "report"
)

// Notification rows are only ever created as a side effect of another
// action; the payload is opaque to everything past the fan-out engine.
type Notification struct {
	ID          uint             `json:"id" gorm:"primarykey"`
	RecipientID uint             `json:"recipient_id" gorm:"index;not null"`
	Type        NotificationType `json:"type" gorm:"not null"`
	Payload     datatypes.JSON   `json:"payload"`
	IsRead      bool             `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at"`
}
