package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/service"
)

type ReminderHandler struct {
	scheduler *service.ReminderScheduler
}

func NewReminderHandler(scheduler *service.ReminderScheduler) *ReminderHandler {
	return &ReminderHandler{scheduler: scheduler}
}

// ActiveReminder handles GET /api/v1/reminders/active
func (h *ReminderHandler) ActiveReminder(c *gin.Context) {
	common.SuccessResponse(c, h.scheduler.Active(), nil)
}

// DismissReminder handles POST /api/v1/reminders/dismiss
func (h *ReminderHandler) DismissReminder(c *gin.Context) {
	h.scheduler.Dismiss()
	common.SuccessResponse(c, gin.H{"dismissed": true}, nil)
}
