package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionService services.ReactionService
}

func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

func (h *ReactionHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	reaction, err := h.reactionService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "reaction created", reaction)
}

func (h *ReactionHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reactionService.Delete(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reaction deleted", nil)
}

func (h *ReactionHandler) GetAll(c *gin.Context) {
	reactions, err := h.reactionService.GetAll()
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reactions loaded", reactions)
}

func (h *ReactionHandler) AddToPost(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	reactionID, ok := paramID(c, "reaction_id")
	if !ok {
		return
	}

	if err := h.reactionService.AddToPost(caller, postID, reactionID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reaction added", nil)
}

func (h *ReactionHandler) RemoveFromPost(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	reactionID, ok := paramID(c, "reaction_id")
	if !ok {
		return
	}

	if err := h.reactionService.RemoveFromPost(caller, postID, reactionID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reaction removed", nil)
}

func (h *ReactionHandler) GetListByPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	reactions, err := h.reactionService.GetListByPost(postID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reactions loaded", reactions)
}
