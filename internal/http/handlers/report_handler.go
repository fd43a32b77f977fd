package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/dto"
	"github.com/transitdesk/lostfound-backend/internal/http/handlers/common"
	"github.com/transitdesk/lostfound-backend/internal/http/middleware"
	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// ReportHandler обслуживает заявления о потере и записи о находках.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler создаёт новый хэндлер.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateLost обрабатывает POST /lost.
func (h *ReportHandler) CreateLost(c *gin.Context) {
	var req dto.CreateLostItemRequest
	if err := common.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.reports.SubmitLostReport(c.Request.Context(), middleware.CurrentIdentity(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.LostSubmissionResponse{
		ReferenceNumber: res.Report.ReferenceNumber,
		Report:          res.Report,
		Matches:         res.Matches,
	})
}

// CreateFound обрабатывает POST /found.
func (h *ReportHandler) CreateFound(c *gin.Context) {
	var req dto.CreateFoundItemRequest
	if err := common.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.reports.SubmitFoundReport(c.Request.Context(), middleware.CurrentIdentity(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FoundSubmissionResponse{
		ReferenceNumber: res.Report.ReferenceNumber,
		Report:          res.Report,
		Matches:         res.Matches,
	})
}

// ListLost обрабатывает GET /lost.
func (h *ReportHandler) ListLost(c *gin.Context) {
	items, err := h.reports.ListLostReports(c.Request.Context(), common.ParseStatuses(c), common.GetPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// ListFound обрабатывает GET /found.
func (h *ReportHandler) ListFound(c *gin.Context) {
	items, err := h.reports.ListFoundReports(c.Request.Context(), common.ParseStatuses(c), common.GetPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// GetLost обрабатывает GET /lost/:ref.
func (h *ReportHandler) GetLost(c *gin.Context) {
	item, err := h.reports.GetLostReport(c.Request.Context(), c.Param("ref"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetFound обрабатывает GET /found/:ref.
func (h *ReportHandler) GetFound(c *gin.Context) {
	item, err := h.reports.GetFoundReport(c.Request.Context(), c.Param("ref"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}
