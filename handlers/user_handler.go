package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	permissionService services.PermissionService
	topicService      services.TopicService
}

func NewUserHandler(permissionService services.PermissionService, topicService services.TopicService) *UserHandler {
	return &UserHandler{
		permissionService: permissionService,
		topicService:      topicService,
	}
}

func (h *UserHandler) SetRole(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	user, err := h.permissionService.SetRole(caller, targetID, req.Role)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "role updated", user)
}

func (h *UserHandler) GetPermissions(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	permissions, err := h.permissionService.GetPermissions(caller, targetID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "permissions loaded", permissions)
}

func (h *UserHandler) SetPermissions(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	user, err := h.permissionService.SetPermissions(caller, targetID, req.Set())
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "permissions updated", user)
}

func (h *UserHandler) Follow(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.FollowUser(caller, targetID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "user followed", nil)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.UnfollowUser(caller, targetID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "user unfollowed", nil)
}
