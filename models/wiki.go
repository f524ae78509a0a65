package models

import (
	"time"

	"gorm.io/gorm"
)

type WikiArticle struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Content     string         `json:"content" gorm:"type:text"`
	UpdatedByID uint           `json:"updated_by_id"`
	UpdatedBy   *User          `json:"updated_by,omitempty" gorm:"foreignKey:UpdatedByID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// WikiArticleHistory snapshots the pre-update state of an article. Every
// update (rollback included) writes one row here before touching the
// article itself.
type WikiArticleHistory struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ArticleID  uint      `json:"article_id" gorm:"index;not null"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text"`
	EditedByID uint      `json:"edited_by_id"`
	EditedBy   *User     `json:"edited_by,omitempty" gorm:"foreignKey:EditedByID"`
	CreatedAt  time.Time `json:"created_at"`
}
