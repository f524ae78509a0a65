package models

import "time"

// Capability is a named boolean permission a moderator may hold. The set is
// closed: capability names coming from clients are checked against
// AllCapabilities before they reach any query.
type Capability string

const (
	CapManageTags      Capability = "can_manage_tags"
	CapDeletePosts     Capability = "can_delete_posts"
	CapBanUsers        Capability = "can_ban_users"
	CapEditWiki        Capability = "can_edit_wiki"
	CapManageReactions Capability = "can_manage_reactions"
)

var AllCapabilities = []Capability{
	CapManageTags,
	CapDeletePosts,
	CapBanUsers,
	CapEditWiki,
	CapManageReactions,
}

func (c Capability) Valid() bool {
	for _, known := range AllCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

type CapabilitySet map[Capability]bool

// ModeratorPermission is the per-user grant row. Absence of a row means the
// user holds no capabilities; admins never have a row and hold all of them
// implicitly.
type ModeratorPermission struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	UserID             uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CanManageTags      bool      `json:"can_manage_tags" gorm:"default:false"`
	CanDeletePosts     bool      `json:"can_delete_posts" gorm:"default:false"`
	CanBanUsers        bool      `json:"can_ban_users" gorm:"default:false"`
	CanEditWiki        bool      `json:"can_edit_wiki" gorm:"default:false"`
	CanManageReactions bool      `json:"can_manage_reactions" gorm:"default:false"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *ModeratorPermission) Has(c Capability) bool {
	switch c {
	case CapManageTags:
		return p.CanManageTags
	case CapDeletePosts:
		return p.CanDeletePosts
	case CapBanUsers:
		return p.CanBanUsers
	case CapEditWiki:
		return p.CanEditWiki
	case CapManageReactions:
		return p.CanManageReactions
	}
	return false
}

func (p *ModeratorPermission) Apply(set CapabilitySet) {
	p.CanManageTags = set[CapManageTags]
	p.CanDeletePosts = set[CapDeletePosts]
	p.CanBanUsers = set[CapBanUsers]
	p.CanEditWiki = set[CapEditWiki]
	p.CanManageReactions = set[CapManageReactions]
}

func (p *ModeratorPermission) Set() CapabilitySet {
	return CapabilitySet{
		CapManageTags:      p.CanManageTags,
		CapDeletePosts:     p.CanDeletePosts,
		CapBanUsers:        p.CanBanUsers,
		CapEditWiki:        p.CanEditWiki,
		CapManageReactions: p.CanManageReactions,
	}
}
