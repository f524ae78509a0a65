package models

import (
	"time"

	"gorm.io/gorm"
)

type Reaction struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type PostReaction struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	PostID     uint      `json:"post_id" gorm:"uniqueIndex:idx_post_reaction;not null"`
	ReactionID uint      `json:"reaction_id" gorm:"uniqueIndex:idx_post_reaction;not null"`
	Reaction   *Reaction `json:"reaction,omitempty" gorm:"foreignKey:ReactionID"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_post_reaction;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
