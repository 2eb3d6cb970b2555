package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
)

type JobHandler struct {
	service service.JobService
}

func NewJobHandler(service service.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	data, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch jobs", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	data, err := h.service.Get(c.Param("id"))
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch job", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req domain.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Create(actorFrom(c), &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create job", err)
		return
	}

	c.JSON(201, common.APIResponse{Data: data})
}

// UpdateJob handles PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req domain.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Update(actorFrom(c), c.Param("id"), &req)
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update job", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// ArchiveJob handles POST /api/v1/jobs/:id/archive
func (h *JobHandler) ArchiveJob(c *gin.Context) {
	h.setArchived(c, true)
}

// RestoreJob handles POST /api/v1/jobs/:id/restore
func (h *JobHandler) RestoreJob(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *JobHandler) setArchived(c *gin.Context, archived bool) {
	err := h.service.Archive(actorFrom(c), c.Param("id"), archived)
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update job", err)
		return
	}
	common.SuccessResponse(c, gin.H{"archived": archived}, nil)
}

// DeleteJob handles DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	err := h.service.Delete(actorFrom(c), c.Param("id"))
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete job", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
