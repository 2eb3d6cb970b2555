package repository

import (
	"errors"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(msg *domain.Message) error
	FindByID(id uint) (*domain.Message, error)
	FindInvolving(participantID string) ([]*domain.Message, error)
	FindBetween(a, b string) ([]*domain.Message, error)
	UpdateText(id uint, text string, isDeleted bool) error
	MarkConversationRead(senderID, receiverID string) error
	DeleteBetween(a, b string) error

	ArchiveConversation(viewerID, partnerID string) error
	UnarchiveConversation(viewerID, partnerID string) error
	FindArchivedPartners(viewerID string) ([]string, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) FindByID(id uint) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// FindInvolving returns every message the participant sent or received,
// oldest first. The conversation aggregator partitions the result per
// partner in memory.
func (r *messageRepository) FindInvolving(participantID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", participantID, participantID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindBetween(a, b string) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) UpdateText(id uint, text string, isDeleted bool) error {
	result := r.db.Model(&domain.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "is_deleted": isDeleted})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMessageNotFound
	}
	return nil
}

// MarkConversationRead flags every unread message from sender to receiver.
// Idempotent: already-read rows are untouched.
func (r *messageRepository) MarkConversationRead(senderID, receiverID string) error {
	return r.db.Model(&domain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) DeleteBetween(a, b string) error {
	return r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Delete(&domain.Message{}).Error
}

func (r *messageRepository) ArchiveConversation(viewerID, partnerID string) error {
	rec := &domain.ArchivedConversation{ViewerID: viewerID, PartnerID: partnerID}
	// Repeated archive calls are no-ops thanks to the unique index.
	return r.db.Where("viewer_id = ? AND partner_id = ?", viewerID, partnerID).
		FirstOrCreate(rec).Error
}

func (r *messageRepository) UnarchiveConversation(viewerID, partnerID string) error {
	return r.db.
		Where("viewer_id = ? AND partner_id = ?", viewerID, partnerID).
		Delete(&domain.ArchivedConversation{}).Error
}

func (r *messageRepository) FindArchivedPartners(viewerID string) ([]string, error) {
	var partners []string
	err := r.db.Model(&domain.ArchivedConversation{}).
		Where("viewer_id = ?", viewerID).
		Pluck("partner_id", &partners).Error
	return partners, err
}
