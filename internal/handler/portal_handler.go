package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

// PortalHandler serves the unauthenticated careers portal: job listings,
// applications, status checks, candidate messaging and the shared timer
// poll. Candidate clients poll over HTTP instead of holding a socket.
type PortalHandler struct {
	jobService       service.JobService
	candidateService service.CandidateService
	messageService   service.MessageService
	timerService     service.TimerService
}

func NewPortalHandler(
	jobService service.JobService,
	candidateService service.CandidateService,
	messageService service.MessageService,
	timerService service.TimerService,
) *PortalHandler {
	return &PortalHandler{
		jobService:       jobService,
		candidateService: candidateService,
		messageService:   messageService,
		timerService:     timerService,
	}
}

// ListJobs handles GET /api/v1/portal/jobs — active postings only
func (h *PortalHandler) ListJobs(c *gin.Context) {
	data, err := h.jobService.ListActive()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch jobs", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Apply handles POST /api/v1/portal/applications
func (h *PortalHandler) Apply(c *gin.Context) {
	var req domain.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.candidateService.Apply(&req)
	if errors.Is(err, common.ErrJobNotFound) {
		common.ErrorResponse(c, 404, "Job not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to submit application", err)
		return
	}
	c.JSON(201, common.APIResponse{Data: data})
}

// statusCheckResult is the restricted view returned to an applicant.
type statusCheckResult struct {
	CandidateID uint                   `json:"candidate_id"`
	Name        string                 `json:"name"`
	Status      domain.CandidateStatus `json:"status"`
	JobID       string                 `json:"job_id"`
	Interview   *domain.Interview      `json:"interview,omitempty"`
}

// StatusCheck handles POST /api/v1/portal/status-check
func (h *PortalHandler) StatusCheck(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	candidate, err := h.candidateService.Lookup(req.Query)
	if errors.Is(err, common.ErrCandidateNotFound) {
		common.ErrorResponse(c, 404, "No application found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to check status", err)
		return
	}

	common.SuccessResponse(c, &statusCheckResult{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Status:      candidate.Status,
		JobID:       candidate.JobID,
		Interview:   candidate.Interview,
	}, nil)
}

// Conversations handles GET /api/v1/portal/candidates/:id/conversations
func (h *PortalHandler) Conversations(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	// Applicants see their staff threads only; the archive and tab filters
	// do not apply on this side.
	q := service.ConversationQuery{
		Tab:  domain.ParticipantStaff,
		Page: ginutil.QueryInt(c, "page", 1),
	}
	data, meta, err := h.messageService.ListConversations(domain.ApplicantParticipant(id), q)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch conversations", err)
		return
	}
	common.SuccessResponse(c, data, meta)
}

// Thread handles GET /api/v1/portal/candidates/:id/conversations/:partner_id/messages
func (h *PortalHandler) Thread(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	data, err := h.messageService.Thread(domain.ApplicantParticipant(id), c.Param("partner_id"), hiddenIDs(c))
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch messages", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// SendMessage handles POST /api/v1/portal/candidates/:id/messages
func (h *PortalHandler) SendMessage(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	// Candidate sends carry a zero actor: no history record is written.
	data, err := h.messageService.Send(domain.ApplicantParticipant(id), req.ReceiverID, req.Text, service.Actor{})
	if errors.Is(err, common.ErrEmptyMessage) || errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid message", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to send message", err)
		return
	}
	c.JSON(201, common.APIResponse{Data: data})
}

// MarkRead handles POST /api/v1/portal/candidates/:id/conversations/:partner_id/read
func (h *PortalHandler) MarkRead(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid candidate ID", err)
		return
	}
	partnerID := c.Param("partner_id")
	if _, err := domain.ParseParticipant(partnerID); err != nil {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}

	if err := h.messageService.MarkConversationRead(partnerID, domain.ApplicantParticipant(id).String()); err != nil {
		common.ErrorResponse(c, 500, "Failed to mark conversation read", err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// timerPollResult pairs the raw shared state with the display value already
// derived for the polling observer.
type timerPollResult struct {
	Timer   *domain.ActiveDynamicTimer `json:"timer"`
	Display float64                    `json:"display"`
}

// Timer handles GET /api/v1/portal/timer?dynamic_id=...
func (h *PortalHandler) Timer(c *gin.Context) {
	dynamicID := c.Query("dynamic_id")
	if dynamicID == "" {
		common.ErrorResponse(c, 400, "dynamic_id is required", nil)
		return
	}

	timer, err := h.timerService.State(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch timer state", err)
		return
	}

	common.SuccessResponse(c, &timerPollResult{
		Timer:   timer,
		Display: service.TimerDisplay(timer, dynamicID, time.Now().UnixMilli()),
	}, nil)
}
