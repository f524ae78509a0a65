package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primarykey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"default:'user'"`

	// Live ban projection. BannedUntil == nil with IsBanned == true is a
	// permanent ban; the audit trail lives in BanRecord.
	IsBanned    bool       `json:"is_banned" gorm:"default:false"`
	BannedUntil *time.Time `json:"banned_until"`

	Nickname   string `json:"nickname"`
	AvatarURL  string `json:"avatar_url"`
	Bio        string `json:"bio"`
	HideBadges bool   `json:"hide_badges" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
