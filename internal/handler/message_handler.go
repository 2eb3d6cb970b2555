package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

type MessageHandler struct {
	service          service.MessageService
	aiService        service.AIService
	candidateService service.CandidateService
	jobService       service.JobService
}

func NewMessageHandler(
	svc service.MessageService,
	aiService service.AIService,
	candidateService service.CandidateService,
	jobService service.JobService,
) *MessageHandler {
	return &MessageHandler{
		service:          svc,
		aiService:        aiService,
		candidateService: candidateService,
		jobService:       jobService,
	}
}

// ListConversations handles GET /api/v1/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	q := service.ConversationQuery{
		Archived:  c.Query("archived") == "true",
		Tab:       domain.ParticipantKind(c.DefaultQuery("tab", string(domain.ParticipantApplicant))),
		Search:    c.Query("search"),
		JobID:     c.Query("job_id"),
		Status:    domain.CandidateStatus(c.Query("status")),
		SortAsc:   c.Query("sort") == "asc",
		Page:      ginutil.QueryInt(c, "page", 1),
		HiddenIDs: hiddenIDs(c),
	}

	data, meta, err := h.service.ListConversations(viewerFrom(c), q)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch conversations", err)
		return
	}
	common.SuccessResponse(c, data, meta)
}

// Thread handles GET /api/v1/conversations/:partner_id/messages
func (h *MessageHandler) Thread(c *gin.Context) {
	data, err := h.service.Thread(viewerFrom(c), c.Param("partner_id"), hiddenIDs(c))
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

// SendMessage handles POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Send(viewerFrom(c), req.ReceiverID, req.Text, actorFrom(c))
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

// EditMessage handles PUT /api/v1/messages/:id
func (h *MessageHandler) EditMessage(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid message ID", err)
		return
	}

	var req domain.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Edit(viewerFrom(c), id, req.Text, actorFrom(c))
	switch {
	case errors.Is(err, common.ErrMessageNotFound):
		common.ErrorResponse(c, 404, "Message not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Only the sender can edit a message", err)
	case errors.Is(err, common.ErrMessageDeleted):
		common.ErrorResponse(c, 409, "Message was deleted", err)
	case errors.Is(err, common.ErrEmptyMessage):
		common.ErrorResponse(c, 400, "Message text is empty", err)
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to edit message", err)
	default:
		common.SuccessResponse(c, data, nil)
	}
}

// DeleteMessage handles DELETE /api/v1/messages/:id — delete for everyone
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid message ID", err)
		return
	}

	err = h.service.DeleteForEveryone(viewerFrom(c), id)
	switch {
	case errors.Is(err, common.ErrMessageNotFound):
		common.ErrorResponse(c, 404, "Message not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Only the sender can delete a message", err)
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to delete message", err)
	default:
		common.SuccessResponse(c, gin.H{"deleted": true}, nil)
	}
}

// MarkRead handles POST /api/v1/conversations/:partner_id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	partnerID := c.Param("partner_id")
	if _, err := domain.ParseParticipant(partnerID); err != nil {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}

	if err := h.service.MarkConversationRead(partnerID, viewerFrom(c).String()); err != nil {
		common.ErrorResponse(c, 500, "Failed to mark conversation read", err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// DeleteConversation handles DELETE /api/v1/conversations/:partner_id
func (h *MessageHandler) DeleteConversation(c *gin.Context) {
	err := h.service.DeleteConversation(viewerFrom(c), c.Param("partner_id"), actorFrom(c))
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete conversation", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// ArchiveConversation handles POST /api/v1/conversations/:partner_id/archive
func (h *MessageHandler) ArchiveConversation(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveConversation handles POST /api/v1/conversations/:partner_id/unarchive
func (h *MessageHandler) UnarchiveConversation(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *MessageHandler) setArchived(c *gin.Context, archived bool) {
	err := h.service.ArchiveConversation(viewerFrom(c), c.Param("partner_id"), archived, actorFrom(c))
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update conversation", err)
		return
	}
	common.SuccessResponse(c, gin.H{"archived": archived}, nil)
}

// SuggestedReplies handles POST /api/v1/conversations/:partner_id/suggested-replies
func (h *MessageHandler) SuggestedReplies(c *gin.Context) {
	partnerID := c.Param("partner_id")
	partner, err := domain.ParseParticipant(partnerID)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid partner ID", err)
		return
	}

	transcript, err := h.service.Thread(viewerFrom(c), partnerID, hiddenIDs(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch messages", err)
		return
	}

	// Candidate and job context sharpen the suggestions but are optional.
	var candidate *domain.Candidate
	var job *domain.Job
	if partner.Kind == domain.ParticipantApplicant {
		if candidate, _ = h.candidateService.Get(partner.ID); candidate != nil {
			job, _ = h.jobService.Get(candidate.JobID)
		}
	}

	replies, err := h.aiService.SuggestedReplies(c.Request.Context(), transcript, candidate, job)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to suggest replies", err)
		return
	}
	common.SuccessResponse(c, replies, nil)
}
