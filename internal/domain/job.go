package domain

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

// JobSource is an external posting location for a job.
type JobSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Job represents one open position (hf_jobs table).
type Job struct {
	ID               string      `gorm:"column:id;primaryKey" json:"id"`
	Title            string      `gorm:"column:title" json:"title"`
	Department       string      `gorm:"column:department" json:"department"`
	Location         string      `gorm:"column:location" json:"location"`
	Description      string      `gorm:"column:description;type:text" json:"description"`
	Responsibilities []string    `gorm:"column:responsibilities;serializer:json" json:"responsibilities"`
	Benefits         []string    `gorm:"column:benefits;serializer:json" json:"benefits"`
	Requirements     []string    `gorm:"column:requirements;serializer:json" json:"requirements"`
	Sources          []JobSource `gorm:"column:sources;serializer:json" json:"sources"`
	Status           JobStatus   `gorm:"column:status;index" json:"status"`
}

func (Job) TableName() string {
	return "hf_jobs"
}

// JobRequest creates or updates a job posting.
type JobRequest struct {
	Title            string      `json:"title" binding:"required"`
	Department       string      `json:"department"`
	Location         string      `json:"location"`
	Description      string      `json:"description"`
	Responsibilities []string    `json:"responsibilities"`
	Benefits         []string    `json:"benefits"`
	Requirements     []string    `json:"requirements"`
	Sources          []JobSource `json:"sources"`
}
