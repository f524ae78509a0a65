package models

import "time"

type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportReviewed ReportStatus = "reviewed"
	ReportClosed   ReportStatus = "closed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportOpen, ReportReviewed, ReportClosed:
		return true
	}
	return false
}

// Report targets exactly one of TargetPostID/TargetUserID; when the target
// is a post, TargetUserID is derived from the post's author. ContextPostID
// is only valid for user reports and must belong to the target user.
type Report struct {
	ID            uint         `json:"id" gorm:"primarykey"`
	ReporterID    uint         `json:"reporter_id" gorm:"index;not null"`
	Reporter      *User        `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	TargetPostID  *uint        `json:"target_post_id"`
	TargetPost    *Post        `json:"target_post,omitempty" gorm:"foreignKey:TargetPostID"`
	TargetUserID  *uint        `json:"target_user_id"`
	TargetUser    *User        `json:"target_user,omitempty" gorm:"foreignKey:TargetUserID"`
	ContextPostID *uint        `json:"context_post_id"`
	ContextPost   *Post        `json:"context_post,omitempty" gorm:"foreignKey:ContextPostID"`
	Reason        string       `json:"reason" gorm:"type:text;not null"`
	Status        ReportStatus `json:"status" gorm:"default:'open'"`
	ResolvedByID  *uint        `json:"resolved_by_id"`
	ResolvedBy    *User        `json:"resolved_by,omitempty" gorm:"foreignKey:ResolvedByID"`
	ResolvedAt    *time.Time   `json:"resolved_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
