package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	badgeService services.BadgeService
}

func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

func (h *BadgeHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	badge, err := h.badgeService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "badge created", badge)
}

func (h *BadgeHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.badgeService.Delete(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "badge deleted", nil)
}

func (h *BadgeHandler) GetAll(c *gin.Context) {
	badges, err := h.badgeService.GetAll()
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "badges loaded", badges)
}

func (h *BadgeHandler) Award(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	badgeID, ok := paramID(c, "badge_id")
	if !ok {
		return
	}

	if err := h.badgeService.Award(caller, userID, badgeID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "badge awarded", nil)
}

func (h *BadgeHandler) Revoke(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	badgeID, ok := paramID(c, "badge_id")
	if !ok {
		return
	}

	if err := h.badgeService.Revoke(caller, userID, badgeID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "badge revoked", nil)
}

func (h *BadgeHandler) GetListByUser(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	badges, err := h.badgeService.GetListByUser(caller, userID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "badges loaded", badges)
}
