package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/middleware"
	"github.com/hireflow/hireflow-backend/internal/service"
)

// actorFrom builds the acting staff member from the JWT context.
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:   middleware.GetUserID(c),
		Name: middleware.GetUsername(c),
	}
}

// viewerFrom is the staff member's participant identity.
func viewerFrom(c *gin.Context) domain.Participant {
	return domain.StaffParticipant(middleware.GetUserID(c))
}

// hiddenIDs parses the optional comma-separated "hidden_ids" query, the
// viewer-local set of messages deleted for themselves.
func hiddenIDs(c *gin.Context) map[uint]bool {
	raw := c.Query("hidden_ids")
	if raw == "" {
		return nil
	}
	hidden := make(map[uint]bool)
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
			hidden[uint(id)] = true
		}
	}
	return hidden
}
