package handlers

import (
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) File(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.File(caller, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendCreated(c, "report filed", report)
}

func (h *ReportHandler) SetStatus(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.SetReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.SetStatus(caller, id, req.Status)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "report status updated", report)
}

func (h *ReportHandler) GetList(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	params := bindListParams(c)
	status := models.ReportStatus(c.Query("status"))

	reports, total, err := h.reportService.GetList(caller, status, params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	helper.SendSuccess(c, "reports loaded", gin.H{
		"reports": reports,
		"paging":  helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}
