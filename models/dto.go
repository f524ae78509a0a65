package models

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	Nickname   *string `json:"nickname"`
	AvatarURL  *string `json:"avatar_url"`
	Bio        *string `json:"bio"`
	HideBadges *bool   `json:"hide_badges"`
}

type SetRoleRequest struct {
	Role UserRole `json:"role" binding:"required"`
}

type SetPermissionsRequest struct {
	CanManageTags      bool `json:"can_manage_tags"`
	CanDeletePosts     bool `json:"can_delete_posts"`
	CanBanUsers        bool `json:"can_ban_users"`
	CanEditWiki        bool `json:"can_edit_wiki"`
	CanManageReactions bool `json:"can_manage_reactions"`
}

func (r SetPermissionsRequest) Set() CapabilitySet {
	return CapabilitySet{
		CapManageTags:      r.CanManageTags,
		CapDeletePosts:     r.CanDeletePosts,
		CapBanUsers:        r.CanBanUsers,
		CapEditWiki:        r.CanEditWiki,
		CapManageReactions: r.CanManageReactions,
	}
}

type WarnRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

type MuteRequest struct {
	Reason  string `json:"reason" binding:"required,min=3,max=500"`
	Minutes int    `json:"minutes" binding:"required"`
}

type BanRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
	// Days == 0 means a permanent ban.
	Days int `json:"days"`
}

type CreateTopicRequest struct {
	Title      string   `json:"title" binding:"required,min=1,max=255"`
	CategoryID *uint    `json:"category_id"`
	Tags       []string `json:"tags"`
}

type SetTopicTagsRequest struct {
	Tags []string `json:"tags"`
}

type CreatePostRequest struct {
	TopicID  uint   `json:"topic_id" binding:"required"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content" binding:"required,min=1"`
}

type EditPostRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type FileReportRequest struct {
	PostID        *uint  `json:"post_id"`
	UserID        *uint  `json:"user_id"`
	ContextPostID *uint  `json:"context_post_id"`
	Reason        string `json:"reason" binding:"required"`
}

type SetReportStatusRequest struct {
	Status ReportStatus `json:"status" binding:"required"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required,min=1"`
}

type CreateWikiArticleRequest struct {
	Slug    string `json:"slug" binding:"required,min=1,max=100"`
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content"`
}

type UpdateWikiArticleRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content"`
}

type CreateReactionRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	ImageURL string `json:"image_url"`
}

type CreateBadgeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type ListParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}
