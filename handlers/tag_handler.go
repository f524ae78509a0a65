package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "tag created", tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(caller, id, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "tag updated", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "tag deleted", nil)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(id)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "tag loaded", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetAll()
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "tags loaded", tags)
}

func (h *TagHandler) CreateCategory(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	category, err := h.tagService.CreateCategory(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "category created", category)
}

func (h *TagHandler) DeleteCategory(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteCategory(caller, id); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "category deleted", nil)
}

func (h *TagHandler) GetCategories(c *gin.Context) {
	categories, err := h.tagService.GetCategories()
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "categories loaded", categories)
}
