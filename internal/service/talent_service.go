package service

import (
	"fmt"
	"time"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// TalentService manages the talent pool and re-entry into the pipeline.
type TalentService interface {
	List() ([]*domain.Talent, error)
	Get(id uint) (*domain.Talent, error)
	Create(actor Actor, req *domain.TalentRequest) (*domain.Talent, error)
	Update(actor Actor, id uint, req *domain.TalentRequest) (*domain.Talent, error)
	Archive(actor Actor, id uint, archived bool) error
	Delete(actor Actor, id uint) error
	SendToJob(actor Actor, id uint, jobID string) (*domain.Candidate, error)
}

type talentService struct {
	repo          repository.TalentRepository
	jobRepo       repository.JobRepository
	candidateRepo repository.CandidateRepository
	history       HistoryService
	hub           *ws.Hub
}

// NewTalentService creates a new TalentService
func NewTalentService(
	repo repository.TalentRepository,
	jobRepo repository.JobRepository,
	candidateRepo repository.CandidateRepository,
	history HistoryService,
	hub *ws.Hub,
) TalentService {
	return &talentService{
		repo:          repo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		history:       history,
		hub:           hub,
	}
}

func (s *talentService) List() ([]*domain.Talent, error) {
	return s.repo.FindAll()
}

func (s *talentService) Get(id uint) (*domain.Talent, error) {
	return s.repo.FindByID(id)
}

func (s *talentService) Create(actor Actor, req *domain.TalentRequest) (*domain.Talent, error) {
	talent := &domain.Talent{
		Name:            req.Name,
		Age:             req.Age,
		City:            req.City,
		Education:       req.Education,
		Experience:      req.Experience,
		Skills:          req.Skills,
		Potential:       req.Potential,
		Status:          req.Status,
		DesiredPosition: req.DesiredPosition,
	}
	if err := s.repo.Create(talent); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionCreateTalent,
		fmt.Sprintf("Added '%s' to the talent pool.", talent.Name))
	s.hub.NotifyCollectionChanged("talents")
	return talent, nil
}

func (s *talentService) Update(actor Actor, id uint, req *domain.TalentRequest) (*domain.Talent, error) {
	talent, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	talent.Name = req.Name
	talent.Age = req.Age
	talent.City = req.City
	talent.Education = req.Education
	talent.Experience = req.Experience
	talent.Skills = req.Skills
	talent.Potential = req.Potential
	talent.Status = req.Status
	talent.DesiredPosition = req.DesiredPosition
	if err := s.repo.Update(talent); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateTalent,
		fmt.Sprintf("Updated talent '%s'.", talent.Name))
	s.hub.NotifyCollectionChanged("talents")
	return talent, nil
}

func (s *talentService) Archive(actor Actor, id uint, archived bool) error {
	talent, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.SetArchived(id, archived); err != nil {
		return err
	}
	action := domain.ActionArchiveTalent
	detail := fmt.Sprintf("Archived talent '%s'.", talent.Name)
	if !archived {
		action = domain.ActionRestoreTalent
		detail = fmt.Sprintf("Restored talent '%s'.", talent.Name)
	}
	s.history.Log(actor, action, detail)
	s.hub.NotifyCollectionChanged("talents")
	return nil
}

func (s *talentService) Delete(actor Actor, id uint) error {
	talent, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteTalent,
		fmt.Sprintf("Permanently deleted talent '%s'.", talent.Name))
	s.hub.NotifyCollectionChanged("talents")
	return nil
}

// SendToJob re-enters a talent into the screening pipeline for a job: a
// fresh candidate is created from the talent and the pool entry is removed.
func (s *talentService) SendToJob(actor Actor, id uint, jobID string) (*domain.Candidate, error) {
	talent, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		Name:            talent.Name,
		Age:             talent.Age,
		Location:        talent.City,
		Experience:      talent.Experience,
		Education:       talent.Education,
		Skills:          append([]string(nil), talent.Skills...),
		Summary:         fmt.Sprintf("Re-entered from the talent pool for '%s'.", job.Title),
		JobID:           job.ID,
		FitScore:        talent.Potential,
		Status:          domain.StatusScreening,
		ApplicationDate: time.Now(),
		Source:          "Talent Pool",
		AvatarURL:       talent.AvatarURL,
		Gender:          talent.Gender,
	}
	if err := s.candidateRepo.Create(candidate); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}

	s.history.Log(actor, domain.ActionSendTalentToJob,
		fmt.Sprintf("Sent talent '%s' to the job posting '%s'.", talent.Name, job.Title))
	s.hub.NotifyCollectionChanged("candidates")
	s.hub.NotifyCollectionChanged("talents")
	return candidate, nil
}
