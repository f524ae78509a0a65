package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService services.ModerationService
}

func NewModerationHandler(moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) Warn(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.WarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	record, err := h.moderationService.Warn(caller, targetID, req.Reason)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "user warned", record)
}

func (h *ModerationHandler) Mute(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	record, err := h.moderationService.Mute(caller, targetID, req.Reason, req.Minutes)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "user muted", record)
}

func (h *ModerationHandler) Ban(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	record, err := h.moderationService.Ban(caller, targetID, req.Reason, req.Days)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "user banned", record)
}

func (h *ModerationHandler) Unban(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.WarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	record, err := h.moderationService.Unban(caller, targetID, req.Reason)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "user unbanned", record)
}

func (h *ModerationHandler) History(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	records, err := h.moderationService.History(caller, targetID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "moderation history loaded", records)
}
