package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
)

type DynamicHandler struct {
	service      service.DynamicService
	timerService service.TimerService
}

func NewDynamicHandler(svc service.DynamicService, timerService service.TimerService) *DynamicHandler {
	return &DynamicHandler{service: svc, timerService: timerService}
}

// ListDynamics handles GET /api/v1/dynamics
func (h *DynamicHandler) ListDynamics(c *gin.Context) {
	data, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch dynamics", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GetDynamic handles GET /api/v1/dynamics/:id
func (h *DynamicHandler) GetDynamic(c *gin.Context) {
	data, err := h.service.Get(c.Param("id"))
	if errors.Is(err, common.ErrDynamicNotFound) {
		common.ErrorResponse(c, 404, "Dynamic not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch dynamic", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// CreateDynamic handles POST /api/v1/dynamics
func (h *DynamicHandler) CreateDynamic(c *gin.Context) {
	var req domain.DynamicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Create(actorFrom(c), &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create dynamic", err)
		return
	}
	c.JSON(201, common.APIResponse{Data: data})
}

// UpdateDynamic handles PUT /api/v1/dynamics/:id
func (h *DynamicHandler) UpdateDynamic(c *gin.Context) {
	var req domain.DynamicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Update(actorFrom(c), c.Param("id"), &req)
	if errors.Is(err, common.ErrDynamicNotFound) {
		common.ErrorResponse(c, 404, "Dynamic not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update dynamic", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// DeleteDynamic handles DELETE /api/v1/dynamics/:id
func (h *DynamicHandler) DeleteDynamic(c *gin.Context) {
	err := h.service.Delete(actorFrom(c), c.Param("id"))
	if errors.Is(err, common.ErrDynamicNotFound) {
		common.ErrorResponse(c, 404, "Dynamic not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete dynamic", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// StartTimer handles POST /api/v1/timer/start
func (h *DynamicHandler) StartTimer(c *gin.Context) {
	var req domain.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	if req.Mode != domain.TimerCountdown && req.Mode != domain.TimerCountup {
		common.ErrorResponse(c, 400, "Invalid timer mode", nil)
		return
	}

	data, err := h.timerService.Start(c.Request.Context(), req.DynamicID, req.DurationMinutes, req.Mode)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to start timer", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// PauseTimer handles POST /api/v1/timer/pause
func (h *DynamicHandler) PauseTimer(c *gin.Context) {
	data, err := h.timerService.Pause(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to pause timer", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ResumeTimer handles POST /api/v1/timer/resume
func (h *DynamicHandler) ResumeTimer(c *gin.Context) {
	data, err := h.timerService.Resume(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to resume timer", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ResetTimer handles POST /api/v1/timer/reset
func (h *DynamicHandler) ResetTimer(c *gin.Context) {
	var req domain.ResetTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.timerService.Reset(c.Request.Context(), req.DynamicID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to reset timer", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// TimerState handles GET /api/v1/timer
func (h *DynamicHandler) TimerState(c *gin.Context) {
	data, err := h.timerService.State(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch timer state", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}
