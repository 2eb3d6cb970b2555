package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// JobService manages job postings and the careers-portal listing.
type JobService interface {
	List() ([]*domain.Job, error)
	ListActive() ([]*domain.Job, error)
	Get(id string) (*domain.Job, error)
	Create(actor Actor, req *domain.JobRequest) (*domain.Job, error)
	Update(actor Actor, id string, req *domain.JobRequest) (*domain.Job, error)
	Archive(actor Actor, id string, archived bool) error
	Delete(actor Actor, id string) error
}

type jobService struct {
	repo    repository.JobRepository
	history HistoryService
	hub     *ws.Hub
}

// NewJobService creates a new JobService
func NewJobService(repo repository.JobRepository, history HistoryService, hub *ws.Hub) JobService {
	return &jobService{repo: repo, history: history, hub: hub}
}

func (s *jobService) List() ([]*domain.Job, error) {
	return s.repo.FindAll()
}

// ListActive returns the postings shown on the public careers portal.
func (s *jobService) ListActive() ([]*domain.Job, error) {
	return s.repo.FindByStatus(domain.JobActive)
}

func (s *jobService) Get(id string) (*domain.Job, error) {
	return s.repo.FindByID(id)
}

func (s *jobService) Create(actor Actor, req *domain.JobRequest) (*domain.Job, error) {
	job := &domain.Job{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Requirements:     req.Requirements,
		Sources:          req.Sources,
		Status:           domain.JobActive,
	}
	if err := s.repo.Create(job); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionCreateJob,
		fmt.Sprintf("Created the job posting '%s'.", job.Title))
	s.hub.NotifyCollectionChanged("jobs")
	return job, nil
}

func (s *jobService) Update(actor Actor, id string, req *domain.JobRequest) (*domain.Job, error) {
	job, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	job.Title = req.Title
	job.Department = req.Department
	job.Location = req.Location
	job.Description = req.Description
	job.Responsibilities = req.Responsibilities
	job.Benefits = req.Benefits
	job.Requirements = req.Requirements
	job.Sources = req.Sources
	if err := s.repo.Update(job); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateJob,
		fmt.Sprintf("Updated the job posting '%s'.", job.Title))
	s.hub.NotifyCollectionChanged("jobs")
	return job, nil
}

// Archive hides a posting from the portal without touching its candidates.
func (s *jobService) Archive(actor Actor, id string, archived bool) error {
	job, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	status := domain.JobActive
	action := domain.ActionRestoreJob
	detail := fmt.Sprintf("Restored the job posting '%s'.", job.Title)
	if archived {
		status = domain.JobArchived
		action = domain.ActionArchiveJob
		detail = fmt.Sprintf("Archived the job posting '%s'.", job.Title)
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.history.Log(actor, action, detail)
	s.hub.NotifyCollectionChanged("jobs")
	return nil
}

func (s *jobService) Delete(actor Actor, id string) error {
	job, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteJob,
		fmt.Sprintf("Permanently deleted the job posting '%s'.", job.Title))
	s.hub.NotifyCollectionChanged("jobs")
	return nil
}
