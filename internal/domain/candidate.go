package domain

import (
	"fmt"
	"time"
)

// CandidateStatus is the screening pipeline phase of a candidate.
type CandidateStatus string

const (
	StatusApplied   CandidateStatus = "applied"
	StatusScreening CandidateStatus = "screening"
	StatusApproved  CandidateStatus = "approved"
	StatusPending   CandidateStatus = "pending"
	StatusWaitlist  CandidateStatus = "waitlist"
	StatusOffer     CandidateStatus = "offer"
	StatusRejected  CandidateStatus = "rejected"
	StatusHired     CandidateStatus = "hired"
)

// DecisionStatuses are the post-interview outcomes that open an undo window.
var DecisionStatuses = []CandidateStatus{StatusOffer, StatusRejected, StatusWaitlist}

// IsDecision reports whether s is a post-interview decision status.
func (s CandidateStatus) IsDecision() bool {
	for _, d := range DecisionStatuses {
		if s == d {
			return true
		}
	}
	return false
}

// Interview is the single scheduled interview slot of a candidate. There is
// no history of past interviews; scheduling again overwrites the slot.
type Interview struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Interviewers []string `json:"interviewers"`
	Notes        string   `json:"notes"`
	NoShow       bool     `json:"no_show,omitempty"`
}

// StartsAt combines Date and Time into an absolute instant in loc.
func (i *Interview) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", i.Date, i.Time), loc)
}

// Experience is one professional experience entry of a resume.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Course is one complementary course entry of a resume.
type Course struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
}

// Resume holds the structured application data submitted by a candidate.
type Resume struct {
	ProfessionalExperience []Experience `json:"professional_experience"`
	Courses                []Course     `json:"courses"`
	Availability           string       `json:"availability"`
	Phone                  string       `json:"phone"`
	Email                  string       `json:"email"`
	PersonalSummary        string       `json:"personal_summary"`
	OwnTransport           string       `json:"own_transport,omitempty"`
	Motivation             string       `json:"motivation,omitempty"`
	FiveYearPlan           string       `json:"five_year_plan,omitempty"`
}

// Candidate represents one applicant to a job (hf_candidates table).
type Candidate struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"column:name" json:"name"`
	Age             int             `gorm:"column:age" json:"age"`
	MaritalStatus   string          `gorm:"column:marital_status" json:"marital_status"`
	Location        string          `gorm:"column:location" json:"location"`
	Experience      string          `gorm:"column:experience;type:text" json:"experience"`
	Education       string          `gorm:"column:education" json:"education"`
	Skills          []string        `gorm:"column:skills;serializer:json" json:"skills"`
	Summary         string          `gorm:"column:summary;type:text" json:"summary"`
	JobID           string          `gorm:"column:job_id;index" json:"job_id"`
	FitScore        float64         `gorm:"column:fit_score" json:"fit_score"`
	Status          CandidateStatus `gorm:"column:status;index" json:"status"`
	ApplicationDate time.Time       `gorm:"column:application_date" json:"application_date"`
	Source          string          `gorm:"column:source" json:"source"`
	IsArchived      bool            `gorm:"column:is_archived" json:"is_archived"`
	Resume          Resume          `gorm:"column:resume;serializer:json" json:"resume"`
	AvatarURL       string          `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Gender          string          `gorm:"column:gender" json:"gender,omitempty"`
	Interview       *Interview      `gorm:"column:interview;serializer:json" json:"interview,omitempty"`
	HireDate        *time.Time      `gorm:"column:hire_date" json:"hire_date,omitempty"`
	ResumeURL       string          `gorm:"column:resume_url" json:"resume_url,omitempty"`
}

func (Candidate) TableName() string {
	return "hf_candidates"
}

// Clone returns a deep copy, including the interview sub-object. The undo
// window holds the copy so later edits cannot leak into the snapshot.
func (c *Candidate) Clone() *Candidate {
	cp := *c
	if c.Interview != nil {
		iv := *c.Interview
		iv.Interviewers = append([]string(nil), c.Interview.Interviewers...)
		cp.Interview = &iv
	}
	cp.Skills = append([]string(nil), c.Skills...)
	cp.Resume.ProfessionalExperience = append([]Experience(nil), c.Resume.ProfessionalExperience...)
	cp.Resume.Courses = append([]Course(nil), c.Resume.Courses...)
	if c.HireDate != nil {
		hd := *c.HireDate
		cp.HireDate = &hd
	}
	return &cp
}

// ApplicationRequest is a public careers-portal submission.
type ApplicationRequest struct {
	JobID             string       `json:"job_id" binding:"required"`
	Name              string       `json:"name" binding:"required"`
	Email             string       `json:"email" binding:"required"`
	Phone             string       `json:"phone"`
	Age               int          `json:"age"`
	MaritalStatus     string       `json:"marital_status"`
	Education         string       `json:"education"`
	Location          string       `json:"location"`
	OwnTransport      string       `json:"own_transport"`
	HasExperience     bool         `json:"has_experience"`
	ExperienceDetails string       `json:"experience_details"`
	Experiences       []Experience `json:"experiences"`
	Courses           []Course     `json:"courses"`
	PersonalSummary   string       `json:"personal_summary"`
	Skills            []string     `json:"skills"`
	Motivation        string       `json:"motivation"`
	Availability      []string     `json:"availability"`
	FiveYearPlan      string       `json:"five_year_plan"`
	ResumeURL         string       `json:"resume_url"`
}

// StatusUpdateRequest changes a candidate's pipeline status.
type StatusUpdateRequest struct {
	Status CandidateStatus `json:"status" binding:"required"`
}

// BulkStatusUpdateRequest changes the status of several candidates at once.
type BulkStatusUpdateRequest struct {
	CandidateIDs []uint          `json:"candidate_ids" binding:"required"`
	Status       CandidateStatus `json:"status" binding:"required"`
}

// ScheduleInterviewRequest sets the interview slot of one candidate.
type ScheduleInterviewRequest struct {
	Interview Interview `json:"interview" binding:"required"`
}

// BulkScheduleRequest sets the same interview slot for several candidates.
type BulkScheduleRequest struct {
	CandidateIDs []uint    `json:"candidate_ids" binding:"required"`
	Interview    Interview `json:"interview" binding:"required"`
}

// BulkCancelRequest removes the interview slot from several candidates.
type BulkCancelRequest struct {
	CandidateIDs []uint `json:"candidate_ids" binding:"required"`
}
