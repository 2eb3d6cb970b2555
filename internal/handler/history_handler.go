package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

type HistoryHandler struct {
	service service.HistoryService
}

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// ListHistory handles GET /api/v1/history
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	data, meta, err := h.service.List(page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch history", err)
		return
	}
	common.SuccessResponse(c, data, meta)
}
