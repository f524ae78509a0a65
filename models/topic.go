package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Topic struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	AuthorID   uint           `json:"author_id" gorm:"not null"`
	Author     *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CategoryID *uint          `json:"category_id"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Title      string         `json:"title" gorm:"not null"`
	Tags       []Tag          `json:"tags" gorm:"many2many:topic_tags;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
