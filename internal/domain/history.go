package domain

import "time"

// HistoryAction identifies what a history record describes.
type HistoryAction string

const (
	ActionCreateUser            HistoryAction = "CREATE_USER"
	ActionDeleteUser            HistoryAction = "DELETE_USER"
	ActionUpdateUser            HistoryAction = "UPDATE_USER"
	ActionToggleAdmin           HistoryAction = "TOGGLE_ADMIN"
	ActionCreateJob             HistoryAction = "CREATE_JOB"
	ActionUpdateJob             HistoryAction = "UPDATE_JOB"
	ActionArchiveJob            HistoryAction = "ARCHIVE_JOB"
	ActionRestoreJob            HistoryAction = "RESTORE_JOB"
	ActionDeleteJob             HistoryAction = "DELETE_JOB"
	ActionUpdateCandidate       HistoryAction = "UPDATE_CANDIDATE"
	ActionArchiveCandidate      HistoryAction = "ARCHIVE_CANDIDATE"
	ActionRestoreCandidate      HistoryAction = "RESTORE_CANDIDATE"
	ActionDeleteCandidate       HistoryAction = "DELETE_CANDIDATE"
	ActionCreateTalent          HistoryAction = "CREATE_TALENT"
	ActionUpdateTalent          HistoryAction = "UPDATE_TALENT"
	ActionArchiveTalent         HistoryAction = "ARCHIVE_TALENT"
	ActionRestoreTalent         HistoryAction = "RESTORE_TALENT"
	ActionDeleteTalent          HistoryAction = "DELETE_TALENT"
	ActionSendTalentToJob       HistoryAction = "SEND_TALENT_TO_JOB"
	ActionSendMessage           HistoryAction = "SEND_MESSAGE"
	ActionUpdateMessage         HistoryAction = "UPDATE_MESSAGE"
	ActionDeleteConversation    HistoryAction = "DELETE_CONVERSATION"
	ActionArchiveConversation   HistoryAction = "ARCHIVE_CONVERSATION"
	ActionUnarchiveConversation HistoryAction = "UNARCHIVE_CONVERSATION"
	ActionRestoreAll            HistoryAction = "RESTORE_ALL"
	ActionDeleteAll             HistoryAction = "DELETE_ALL"
	ActionCreateDynamic         HistoryAction = "CREATE_DYNAMIC"
	ActionUpdateDynamic         HistoryAction = "UPDATE_DYNAMIC"
	ActionDeleteDynamic         HistoryAction = "DELETE_DYNAMIC"
)

// HistoryEvent is one immutable audit record (hf_history table).
// History is append-only; nothing edits or deletes it in normal operation.
type HistoryEvent struct {
	ID        uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp time.Time     `gorm:"column:timestamp;index" json:"timestamp"`
	ActorID   uint          `gorm:"column:actor_id;index" json:"actor_id"`
	ActorName string        `gorm:"column:actor_name" json:"actor_name"`
	Action    HistoryAction `gorm:"column:action;index" json:"action"`
	Details   string        `gorm:"column:details;type:text" json:"details"`
}

func (HistoryEvent) TableName() string {
	return "hf_history"
}
