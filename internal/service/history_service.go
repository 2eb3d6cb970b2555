package service

import (
	"time"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// HistoryService records and lists the append-only audit trail.
type HistoryService interface {
	Log(actor Actor, action domain.HistoryAction, details string)
	List(page, limit int) ([]*domain.HistoryEvent, *common.Meta, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

// Log appends one audit record. Failures are logged and swallowed: the
// primary mutation already succeeded and is not rolled back for a missing
// audit row.
func (s *historyService) Log(actor Actor, action domain.HistoryAction, details string) {
	event := &domain.HistoryEvent{
		Timestamp: time.Now(),
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Details:   details,
	}
	if err := s.repo.Append(event); err != nil {
		logger.GetLogger().Error().Err(err).
			Str("action", string(action)).
			Msg("history append failed")
	}
}

func (s *historyService) List(page, limit int) ([]*domain.HistoryEvent, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	events, total, err := s.repo.FindAll(page, limit)
	if err != nil {
		return nil, nil, err
	}
	meta := &common.Meta{Page: page, Limit: limit, Total: total}
	return events, meta, nil
}
