package domain

import "time"

// DeletedMessagePlaceholder replaces the text of a message deleted for
// everyone. The row itself is never removed while either party may still
// reference it.
const DeletedMessagePlaceholder = "Message deleted"

// Message represents one direct message between a staff member and a
// candidate, or between two staff members (hf_messages table).
type Message struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID   string    `gorm:"column:sender_id;index" json:"sender_id"`
	ReceiverID string    `gorm:"column:receiver_id;index" json:"receiver_id"`
	Text       string    `gorm:"column:text;type:text" json:"text"`
	Timestamp  time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	IsRead     bool      `gorm:"column:is_read" json:"is_read"`
	IsDeleted  bool      `gorm:"column:is_deleted" json:"is_deleted"`
}

func (Message) TableName() string {
	return "hf_messages"
}

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// EditMessageRequest rewrites the text of an existing message
type EditMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// Conversation is a derived per-partner thread summary. It is never
// persisted; it is recomputed from the message set on every change.
type Conversation struct {
	PartnerID   string     `json:"partner_id"`
	PartnerName string     `json:"partner_name"`
	PartnerKind string     `json:"partner_kind"`
	Candidate   *Candidate `json:"candidate,omitempty"`
	LastMessage *Message   `json:"last_message"`
	UnreadCount int        `json:"unread_count"`
	IsArchived  bool       `json:"is_archived"`
}

// ArchivedConversation marks a partner thread as archived for one viewer.
// The archive set is per-viewer state, never shared between staff members.
type ArchivedConversation struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ViewerID  string `gorm:"column:viewer_id;index:idx_viewer_partner,unique" json:"viewer_id"`
	PartnerID string `gorm:"column:partner_id;index:idx_viewer_partner,unique" json:"partner_id"`
}

func (ArchivedConversation) TableName() string {
	return "hf_archived_conversations"
}
