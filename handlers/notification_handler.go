package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetList(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	params := bindListParams(c)

	notifications, total, err := h.notificationService.GetList(caller, params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "notifications loaded", gin.H{
		"notifications": notifications,
		"paging":        helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	count, err := h.notificationService.CountUnread(caller)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "unread count loaded", gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "notification marked read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.notificationService.MarkAllRead(caller); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "notifications marked read", nil)
}
