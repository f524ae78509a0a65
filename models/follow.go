package models

import "time"

type TopicFollow struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_topic_follow;not null"`
	TopicID   uint      `json:"topic_id" gorm:"uniqueIndex:idx_topic_follow;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type UserFollow struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	FollowerID uint      `json:"follower_id" gorm:"uniqueIndex:idx_user_follow;not null"`
	FolloweeID uint      `json:"followee_id" gorm:"uniqueIndex:idx_user_follow;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
