package repository

import (
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// HistoryRepository append-only audit log access. There is deliberately no
// update or delete operation.
type HistoryRepository interface {
	Append(event *domain.HistoryEvent) error
	FindAll(page, limit int) ([]*domain.HistoryEvent, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(event *domain.HistoryEvent) error {
	return r.db.Create(event).Error
}

func (r *historyRepository) FindAll(page, limit int) ([]*domain.HistoryEvent, int64, error) {
	var events []*domain.HistoryEvent
	var total int64

	r.db.Model(&domain.HistoryEvent{}).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, total, err
}
