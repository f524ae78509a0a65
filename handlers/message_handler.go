package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Send(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "message sent", message)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	partnerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	params := bindListParams(c)

	messages, total, err := h.messageService.GetConversation(caller, partnerID, params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "conversation loaded", gin.H{
		"messages": messages,
		"paging":   helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	partnerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkConversationRead(caller, partnerID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "conversation marked read", nil)
}
