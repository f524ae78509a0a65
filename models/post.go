package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID       uint  `json:"id" gorm:"primarykey"`
	TopicID  uint  `json:"topic_id" gorm:"index;not null"`
	Topic    *Topic `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	AuthorID uint  `json:"author_id" gorm:"index;not null"`
	Author   *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	// ParentID threads replies; nil for top-level posts. A parent must
	// belong to the same topic.
	ParentID *uint `json:"parent_id"`
	Parent   *Post `json:"parent,omitempty" gorm:"foreignKey:ParentID"`

	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
