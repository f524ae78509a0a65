package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicService services.TopicService
}

func NewTopicHandler(topicService services.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (h *TopicHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	topic, err := h.topicService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "topic created", topic)
}

func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	topic, err := h.topicService.Get(id)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topic loaded", topic)
}

func (h *TopicHandler) GetList(c *gin.Context) {
	params := bindListParams(c)

	topics, total, err := h.topicService.GetList(params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topics loaded", gin.H{
		"topics": topics,
		"paging": helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.Delete(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topic deleted", nil)
}

func (h *TopicHandler) SetTags(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.SetTopicTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	topic, err := h.topicService.SetTags(caller, id, req.Tags)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topic tags updated", topic)
}

func (h *TopicHandler) Follow(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.Follow(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topic followed", nil)
}

func (h *TopicHandler) Unfollow(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.Unfollow(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "topic unfollowed", nil)
}
