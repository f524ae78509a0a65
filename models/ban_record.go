package models

import "time"

type ModerationAction string

const (
	ActionWarn  ModerationAction = "warn"
	ActionMute  ModerationAction = "mute"
	ActionBan   ModerationAction = "ban"
	ActionUnban ModerationAction = "unban"
)

// BanRecord is the append-only moderation audit trail. Rows are never
// updated or deleted; the User row carries the live projection.
type BanRecord struct {
	ID             uint             `json:"id" gorm:"primarykey"`
	TargetUserID   uint             `json:"target_user_id" gorm:"index;not null"`
	TargetUser     *User            `json:"target_user,omitempty" gorm:"foreignKey:TargetUserID"`
	ActorID        uint             `json:"actor_id" gorm:"not null"`
	Actor          *User            `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
	Action         ModerationAction `json:"action" gorm:"not null"`
	Reason         string           `json:"reason" gorm:"type:text"`
	EffectiveUntil *time.Time       `json:"effective_until"`
	CreatedAt      time.Time        `json:"created_at"`
}
