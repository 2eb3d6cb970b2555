package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/service"
)

type ArchiveHandler struct {
	service service.ArchiveService
}

func NewArchiveHandler(svc service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: svc}
}

// RestoreAll handles POST /api/v1/archive/restore-all
func (h *ArchiveHandler) RestoreAll(c *gin.Context) {
	if err := h.service.RestoreAll(actorFrom(c)); err != nil {
		common.ErrorResponse(c, 500, "Failed to restore archived records", err)
		return
	}
	common.SuccessResponse(c, gin.H{"restored": true}, nil)
}

// DeleteAll handles POST /api/v1/archive/delete-all
func (h *ArchiveHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(actorFrom(c)); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete archived records", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
