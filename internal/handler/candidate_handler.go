package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

type CandidateHandler struct {
	service service.CandidateService
}

func NewCandidateHandler(service service.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// ListCandidates handles GET /api/v1/candidates
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	data, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch candidates", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GetCandidate handles GET /api/v1/candidates/:id
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	data, err := h.service.Get(id)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch candidate", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// UpdateCandidate handles PUT /api/v1/candidates/:id
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	var candidate domain.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	candidate.ID = id

	data, err := h.service.Update(actorFrom(c), &candidate)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update candidate", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// UpdateStatus handles PATCH /api/v1/candidates/:id/status
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	var req domain.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.UpdateStatus(actorFrom(c), id, req.Status)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update status", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// BulkUpdateStatus handles POST /api/v1/candidates/bulk-status
func (h *CandidateHandler) BulkUpdateStatus(c *gin.Context) {
	var req domain.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.service.BulkUpdateStatus(actorFrom(c), req.CandidateIDs, req.Status); err != nil {
		common.ErrorResponse(c, 500, "Failed to update statuses", err)
		return
	}
	common.SuccessResponse(c, gin.H{"updated": len(req.CandidateIDs)}, nil)
}

// PendingUndo handles GET /api/v1/candidates/undo
func (h *CandidateHandler) PendingUndo(c *gin.Context) {
	common.SuccessResponse(c, h.service.PendingUndo(), nil)
}

// Undo handles POST /api/v1/candidates/undo
func (h *CandidateHandler) Undo(c *gin.Context) {
	data, err := h.service.Undo(actorFrom(c))
	if errors.Is(err, common.ErrNotFound) {
		common.ErrorResponse(c, 404, "Nothing to undo", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to undo", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// DismissUndo handles DELETE /api/v1/candidates/undo
func (h *CandidateHandler) DismissUndo(c *gin.Context) {
	h.service.DismissUndo()
	common.SuccessResponse(c, gin.H{"dismissed": true}, nil)
}

// PendingOffer handles GET /api/v1/candidates/ai-offer
func (h *CandidateHandler) PendingOffer(c *gin.Context) {
	common.SuccessResponse(c, h.service.PendingOffer(), nil)
}

// AcceptOffer handles POST /api/v1/candidates/ai-offer/accept
func (h *CandidateHandler) AcceptOffer(c *gin.Context) {
	err := h.service.AcceptOffer(c.Request.Context(), actorFrom(c))
	if errors.Is(err, common.ErrNotFound) {
		common.ErrorResponse(c, 404, "No pending offer", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to send invitation", err)
		return
	}
	common.SuccessResponse(c, gin.H{"sent": true}, nil)
}

// DismissOffer handles DELETE /api/v1/candidates/ai-offer
func (h *CandidateHandler) DismissOffer(c *gin.Context) {
	h.service.DismissOffer()
	common.SuccessResponse(c, gin.H{"dismissed": true}, nil)
}

// ScheduleInterview handles POST /api/v1/candidates/:id/interview
func (h *CandidateHandler) ScheduleInterview(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	var req domain.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.ScheduleInterview(actorFrom(c), id, req.Interview)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to schedule interview", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// BulkScheduleInterviews handles POST /api/v1/candidates/bulk-interview
func (h *CandidateHandler) BulkScheduleInterviews(c *gin.Context) {
	var req domain.BulkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.service.BulkScheduleInterviews(actorFrom(c), req.CandidateIDs, req.Interview); err != nil {
		common.ErrorResponse(c, 500, "Failed to schedule interviews", err)
		return
	}
	common.SuccessResponse(c, gin.H{"scheduled": len(req.CandidateIDs)}, nil)
}

// BulkCancelInterviews handles POST /api/v1/candidates/bulk-interview-cancel
func (h *CandidateHandler) BulkCancelInterviews(c *gin.Context) {
	var req domain.BulkCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.service.BulkCancelInterviews(actorFrom(c), req.CandidateIDs); err != nil {
		common.ErrorResponse(c, 500, "Failed to cancel interviews", err)
		return
	}
	common.SuccessResponse(c, gin.H{"cancelled": len(req.CandidateIDs)}, nil)
}

// SetNoShow handles POST /api/v1/candidates/:id/no-show
func (h *CandidateHandler) SetNoShow(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	var req struct {
		NoShow bool `json:"no_show"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.SetNoShow(actorFrom(c), id, req.NoShow)
	if errors.Is(err, common.ErrCandidateNotFound) || errors.Is(err, common.ErrNotFound) {
		common.ErrorResponse(c, 404, "Candidate or interview not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update attendance", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ArchiveCandidate handles POST /api/v1/candidates/:id/archive
func (h *CandidateHandler) ArchiveCandidate(c *gin.Context) {
	h.setArchived(c, true)
}

// RestoreCandidate handles POST /api/v1/candidates/:id/restore
func (h *CandidateHandler) RestoreCandidate(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *CandidateHandler) setArchived(c *gin.Context, archived bool) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	err = h.service.Archive(actorFrom(c), id, archived)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update candidate", err)
		return
	}
	common.SuccessResponse(c, gin.H{"archived": archived}, nil)
}

// DeleteCandidate handles DELETE /api/v1/candidates/:id
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	err = h.service.Delete(actorFrom(c), id)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "Candidate not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete candidate", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
