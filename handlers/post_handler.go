package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "post created", post)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "post loaded", post)
}

func (h *PostHandler) GetListByTopic(c *gin.Context) {
	topicID, ok := paramID(c, "id")
	if !ok {
		return
	}
	params := bindListParams(c)

	posts, total, err := h.postService.GetListByTopic(topicID, params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "posts loaded", gin.H{
		"posts":  posts,
		"paging": helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *PostHandler) Edit(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Edit(caller, id, req.Content)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "post updated", post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "post deleted", nil)
}
