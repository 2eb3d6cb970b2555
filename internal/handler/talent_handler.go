package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

type TalentHandler struct {
	service service.TalentService
}

func NewTalentHandler(service service.TalentService) *TalentHandler {
	return &TalentHandler{service: service}
}

// ListTalents handles GET /api/v1/talents
func (h *TalentHandler) ListTalents(c *gin.Context) {
	data, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch talents", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// CreateTalent handles POST /api/v1/talents
func (h *TalentHandler) CreateTalent(c *gin.Context) {
	var req domain.TalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Create(actorFrom(c), &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create talent", err)
		return
	}
	c.JSON(201, common.APIResponse{Data: data})
}

// UpdateTalent handles PUT /api/v1/talents/:id
func (h *TalentHandler) UpdateTalent(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid talent ID", err)
		return
	}

	var req domain.TalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Update(actorFrom(c), id, &req)
	if errors.Is(err, common.ErrTalentNotFound) {
		common.ErrorResponse(c, 404, "Talent not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update talent", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ArchiveTalent handles POST /api/v1/talents/:id/archive
func (h *TalentHandler) ArchiveTalent(c *gin.Context) {
	h.setArchived(c, true)
}

// RestoreTalent handles POST /api/v1/talents/:id/restore
func (h *TalentHandler) RestoreTalent(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *TalentHandler) setArchived(c *gin.Context, archived bool) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid talent ID", err)
		return
	}

	err = h.service.Archive(actorFrom(c), id, archived)
	if errors.Is(err, common.ErrTalentNotFound) {
		common.ErrorResponse(c, 404, "Talent not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update talent", err)
		return
	}
	common.SuccessResponse(c, gin.H{"archived": archived}, nil)
}

// DeleteTalent handles DELETE /api/v1/talents/:id
func (h *TalentHandler) DeleteTalent(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid talent ID", err)
		return
	}

	err = h.service.Delete(actorFrom(c), id)
	if errors.Is(err, common.ErrTalentNotFound) {
		common.ErrorResponse(c, 404, "Talent not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete talent", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// SendToJob handles POST /api/v1/talents/:id/send-to-job
func (h *TalentHandler) SendToJob(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid talent ID", err)
		return
	}

	var req domain.SendTalentToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.SendToJob(actorFrom(c), id, req.JobID)
	if errors.Is(err, common.ErrTalentNotFound) {
		common.ErrorResponse(c, 404, "Talent not found", err)
		return
	}
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to send talent to job", err)
		return
	}
	c.JSON(201, common.APIResponse{Data: data})
}
