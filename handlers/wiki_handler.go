package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

// Wiki routes are keyed by slug; mutation handlers resolve the slug to the
// article first.
type WikiHandler struct {
	wikiService services.WikiService
}

func NewWikiHandler(wikiService services.WikiService) *WikiHandler {
	return &WikiHandler{wikiService: wikiService}
}

func (h *WikiHandler) resolve(c *gin.Context) (*models.WikiArticle, bool) {
	article, err := h.wikiService.GetBySlug(c.Param("slug"))
	if err != nil {
		helper.SendError(c, err)
		return nil, false
	}
	return article, true
}

func (h *WikiHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateWikiArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	article, err := h.wikiService.Create(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "article created", article)
}

func (h *WikiHandler) Get(c *gin.Context) {
	article, ok := h.resolve(c)
	if !ok {
		return
	}
	helper.SendSuccess(c, "article loaded", article)
}

func (h *WikiHandler) GetList(c *gin.Context) {
	params := bindListParams(c)

	articles, total, err := h.wikiService.GetList(params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "articles loaded", gin.H{
		"articles": articles,
		"paging":   helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *WikiHandler) Update(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	article, ok := h.resolve(c)
	if !ok {
		return
	}

	var req models.UpdateWikiArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	updated, err := h.wikiService.Update(caller, article.ID, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "article updated", updated)
}

func (h *WikiHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	article, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.wikiService.Delete(caller, article.ID); err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "article deleted", nil)
}

func (h *WikiHandler) Rollback(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	article, ok := h.resolve(c)
	if !ok {
		return
	}
	historyID, ok := paramID(c, "history_id")
	if !ok {
		return
	}

	updated, err := h.wikiService.Rollback(caller, article.ID, historyID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "article rolled back", updated)
}

func (h *WikiHandler) GetHistory(c *gin.Context) {
	article, ok := h.resolve(c)
	if !ok {
		return
	}

	history, err := h.wikiService.GetHistory(article.ID)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "history loaded", history)
}
