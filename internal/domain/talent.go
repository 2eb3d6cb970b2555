package domain

// Talent is a past applicant kept in the talent pool for future openings
// (hf_talents table). Rejected candidates are mirrored here automatically.
type Talent struct {
	ID                  uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OriginalCandidateID uint     `gorm:"column:original_candidate_id;index" json:"original_candidate_id,omitempty"`
	Name                string   `gorm:"column:name" json:"name"`
	Age                 int      `gorm:"column:age" json:"age"`
	City                string   `gorm:"column:city" json:"city"`
	Education           string   `gorm:"column:education" json:"education"`
	Experience          string   `gorm:"column:experience;type:text" json:"experience"`
	Skills              []string `gorm:"column:skills;serializer:json" json:"skills"`
	Potential           float64  `gorm:"column:potential" json:"potential"`
	Status              string   `gorm:"column:status" json:"status"`
	DesiredPosition     string   `gorm:"column:desired_position" json:"desired_position"`
	AvatarURL           string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Gender              string   `gorm:"column:gender" json:"gender,omitempty"`
	RejectionReason     string   `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	IsArchived          bool     `gorm:"column:is_archived" json:"is_archived"`
}

func (Talent) TableName() string {
	return "hf_talents"
}

// TalentRequest creates or updates a talent-pool entry.
type TalentRequest struct {
	Name            string   `json:"name" binding:"required"`
	Age             int      `json:"age"`
	City            string   `json:"city"`
	Education       string   `json:"education"`
	Experience      string   `json:"experience"`
	Skills          []string `json:"skills"`
	Potential       float64  `json:"potential"`
	Status          string   `json:"status"`
	DesiredPosition string   `json:"desired_position"`
}

// SendTalentToJobRequest re-enters a talent into the pipeline for a job.
type SendTalentToJobRequest struct {
	JobID string `json:"job_id" binding:"required"`
}
