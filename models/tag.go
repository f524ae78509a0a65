package models

import (
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TagAudit captures every catalog mutation (tags, and the reaction, badge
// and category catalogs, discriminated by EntityType). Append-only.
type TagAudit struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ActorID    uint      `json:"actor_id" gorm:"not null"`
	EntityType string    `json:"entity_type" gorm:"default:'tag'"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	CreatedAt  time.Time `json:"created_at"`
}

// TopicTagAudit captures every topic↔tag set change. Append-only.
type TopicTagAudit struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ActorID   uint      `json:"actor_id" gorm:"not null"`
	TopicID   uint      `json:"topic_id" gorm:"index;not null"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}
