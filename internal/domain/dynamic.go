package domain

// DynamicGroup is one breakout group inside a group-interview session.
type DynamicGroup struct {
	Name            string          `json:"name"`
	Members         []string        `json:"members"`
	GroupNotes      string          `json:"group_notes,omitempty"`
	IndividualNotes map[string]string `json:"individual_notes,omitempty"`
}

// Dynamic is a scheduled group-interview session (hf_dynamics table).
type Dynamic struct {
	ID           string         `gorm:"column:id;primaryKey" json:"id"`
	Title        string         `gorm:"column:title" json:"title"`
	Script       string         `gorm:"column:script;type:text" json:"script"`
	Date         string         `gorm:"column:date" json:"date"`
	Participants []string       `gorm:"column:participants;serializer:json" json:"participants"`
	Groups       []DynamicGroup `gorm:"column:groups;serializer:json" json:"groups"`
	GeneralNotes string         `gorm:"column:general_notes;type:text" json:"general_notes,omitempty"`
	Status       string         `gorm:"column:status" json:"status,omitempty"`
}

func (Dynamic) TableName() string {
	return "hf_dynamics"
}

// DynamicRequest creates or updates a group-interview session.
type DynamicRequest struct {
	Title        string         `json:"title" binding:"required"`
	Script       string         `json:"script"`
	Date         string         `json:"date"`
	Participants []string       `json:"participants"`
	Groups       []DynamicGroup `json:"groups"`
	GeneralNotes string         `json:"general_notes"`
	Status       string         `json:"status"`
}
