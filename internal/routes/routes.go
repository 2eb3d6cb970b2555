package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/handler"
	"github.com/hireflow/hireflow-backend/internal/middleware"
	"github.com/hireflow/hireflow-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	candidateHandler *handler.CandidateHandler,
	talentHandler *handler.TalentHandler,
	messageHandler *handler.MessageHandler,
	dynamicHandler *handler.DynamicHandler,
	historyHandler *handler.HistoryHandler,
	reminderHandler *handler.ReminderHandler,
	archiveHandler *handler.ArchiveHandler,
	portalHandler *handler.PortalHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication (no auth required)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Public careers portal (no auth required)
	portal := api.Group("/portal")
	portal.GET("/jobs", portalHandler.ListJobs)
	portal.POST("/applications", portalHandler.Apply)
	portal.POST("/status-check", portalHandler.StatusCheck)
	portal.GET("/timer", portalHandler.Timer)

	portalCandidates := portal.Group("/candidates/:id")
	{
		portalCandidates.GET("/conversations", portalHandler.Conversations)
		portalCandidates.GET("/conversations/:partner_id/messages", portalHandler.Thread)
		portalCandidates.POST("/conversations/:partner_id/read", portalHandler.MarkRead)
		portalCandidates.POST("/messages", portalHandler.SendMessage)
	}

	// Everything below requires a staff session
	staff := api.Group("", middleware.JWTAuth(jwtManager))

	// Staff members (admin only for mutations)
	users := staff.Group("/users")
	users.GET("", authHandler.ListUsers)
	users.POST("", middleware.RequireAdmin(), authHandler.CreateUser)
	users.PUT("/:id", middleware.RequireAdmin(), authHandler.UpdateUser)
	users.POST("/:id/toggle-admin", middleware.RequireAdmin(), authHandler.ToggleAdmin)
	users.DELETE("/:id", middleware.RequireAdmin(), authHandler.DeleteUser)

	// Job postings
	jobs := staff.Group("/jobs")
	jobs.GET("", jobHandler.ListJobs)
	jobs.GET("/:id", jobHandler.GetJob)
	jobs.POST("", jobHandler.CreateJob)
	jobs.PUT("/:id", jobHandler.UpdateJob)
	jobs.POST("/:id/archive", jobHandler.ArchiveJob)
	jobs.POST("/:id/restore", jobHandler.RestoreJob)
	jobs.DELETE("/:id", jobHandler.DeleteJob)

	// Candidates and the status workflow
	candidates := staff.Group("/candidates")
	{
		candidates.GET("", candidateHandler.ListCandidates)
		candidates.POST("/bulk-status", candidateHandler.BulkUpdateStatus)
		candidates.POST("/bulk-interview", candidateHandler.BulkScheduleInterviews)
		candidates.POST("/bulk-interview-cancel", candidateHandler.BulkCancelInterviews)

		// Undo window and the AI invitation offer are singleton slots
		candidates.GET("/undo", candidateHandler.PendingUndo)
		candidates.POST("/undo", candidateHandler.Undo)
		candidates.DELETE("/undo", candidateHandler.DismissUndo)
		candidates.GET("/ai-offer", candidateHandler.PendingOffer)
		candidates.POST("/ai-offer/accept", candidateHandler.AcceptOffer)
		candidates.DELETE("/ai-offer", candidateHandler.DismissOffer)

		candidates.GET("/:id", candidateHandler.GetCandidate)
		candidates.PUT("/:id", candidateHandler.UpdateCandidate)
		candidates.PATCH("/:id/status", candidateHandler.UpdateStatus)
		candidates.POST("/:id/interview", candidateHandler.ScheduleInterview)
		candidates.POST("/:id/no-show", candidateHandler.SetNoShow)
		candidates.POST("/:id/archive", candidateHandler.ArchiveCandidate)
		candidates.POST("/:id/restore", candidateHandler.RestoreCandidate)
		candidates.DELETE("/:id", candidateHandler.DeleteCandidate)
	}

	// Talent pool
	talents := staff.Group("/talents")
	talents.GET("", talentHandler.ListTalents)
	talents.POST("", talentHandler.CreateTalent)
	talents.PUT("/:id", talentHandler.UpdateTalent)
	talents.POST("/:id/archive", talentHandler.ArchiveTalent)
	talents.POST("/:id/restore", talentHandler.RestoreTalent)
	talents.POST("/:id/send-to-job", talentHandler.SendToJob)
	talents.DELETE("/:id", talentHandler.DeleteTalent)

	// Messaging
	conversations := staff.Group("/conversations")
	{
		conversations.GET("", messageHandler.ListConversations)
		conversations.GET("/:partner_id/messages", messageHandler.Thread)
		conversations.POST("/:partner_id/read", messageHandler.MarkRead)
		conversations.POST("/:partner_id/archive", messageHandler.ArchiveConversation)
		conversations.POST("/:partner_id/unarchive", messageHandler.UnarchiveConversation)
		conversations.POST("/:partner_id/suggested-replies", messageHandler.SuggestedReplies)
		conversations.DELETE("/:partner_id", messageHandler.DeleteConversation)
	}
	messages := staff.Group("/messages")
	messages.POST("", messageHandler.SendMessage)
	messages.PUT("/:id", messageHandler.EditMessage)
	messages.DELETE("/:id", messageHandler.DeleteMessage)

	// Group sessions and the shared timer
	dynamics := staff.Group("/dynamics")
	dynamics.GET("", dynamicHandler.ListDynamics)
	dynamics.GET("/:id", dynamicHandler.GetDynamic)
	dynamics.POST("", dynamicHandler.CreateDynamic)
	dynamics.PUT("/:id", dynamicHandler.UpdateDynamic)
	dynamics.DELETE("/:id", dynamicHandler.DeleteDynamic)

	timer := staff.Group("/timer")
	timer.GET("", dynamicHandler.TimerState)
	timer.POST("/start", dynamicHandler.StartTimer)
	timer.POST("/pause", dynamicHandler.PauseTimer)
	timer.POST("/resume", dynamicHandler.ResumeTimer)
	timer.POST("/reset", dynamicHandler.ResetTimer)

	// Interview reminders
	reminders := staff.Group("/reminders")
	reminders.GET("/active", reminderHandler.ActiveReminder)
	reminders.POST("/dismiss", reminderHandler.DismissReminder)

	// Audit trail and archive maintenance
	staff.GET("/history", historyHandler.ListHistory)
	archive := staff.Group("/archive")
	archive.POST("/restore-all", archiveHandler.RestoreAll)
	archive.POST("/delete-all", archiveHandler.DeleteAll)

	// Real-time events
	router.GET("/ws", middleware.JWTAuth(jwtManager), wsHandler.Connect)
}
