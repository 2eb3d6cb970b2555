package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// DynamicService manages group-interview sessions.
type DynamicService interface {
	List() ([]*domain.Dynamic, error)
	Get(id string) (*domain.Dynamic, error)
	Create(actor Actor, req *domain.DynamicRequest) (*domain.Dynamic, error)
	Update(actor Actor, id string, req *domain.DynamicRequest) (*domain.Dynamic, error)
	Delete(actor Actor, id string) error
}

type dynamicService struct {
	repo    repository.DynamicRepository
	history HistoryService
	hub     *ws.Hub
}

// NewDynamicService creates a new DynamicService
func NewDynamicService(repo repository.DynamicRepository, history HistoryService, hub *ws.Hub) DynamicService {
	return &dynamicService{repo: repo, history: history, hub: hub}
}

func (s *dynamicService) List() ([]*domain.Dynamic, error) {
	return s.repo.FindAll()
}

func (s *dynamicService) Get(id string) (*domain.Dynamic, error) {
	return s.repo.FindByID(id)
}

func (s *dynamicService) Create(actor Actor, req *domain.DynamicRequest) (*domain.Dynamic, error) {
	dynamic := &domain.Dynamic{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Script:       req.Script,
		Date:         req.Date,
		Participants: req.Participants,
		Groups:       req.Groups,
		GeneralNotes: req.GeneralNotes,
		Status:       req.Status,
	}
	if err := s.repo.Create(dynamic); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionCreateDynamic,
		fmt.Sprintf("Created the group session '%s'.", dynamic.Title))
	s.hub.NotifyCollectionChanged("dynamics")
	return dynamic, nil
}

func (s *dynamicService) Update(actor Actor, id string, req *domain.DynamicRequest) (*domain.Dynamic, error) {
	dynamic, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	dynamic.Title = req.Title
	dynamic.Script = req.Script
	dynamic.Date = req.Date
	dynamic.Participants = req.Participants
	dynamic.Groups = req.Groups
	dynamic.GeneralNotes = req.GeneralNotes
	dynamic.Status = req.Status
	if err := s.repo.Update(dynamic); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateDynamic,
		fmt.Sprintf("Updated the group session '%s'.", dynamic.Title))
	s.hub.NotifyCollectionChanged("dynamics")
	return dynamic, nil
}

func (s *dynamicService) Delete(actor Actor, id string) error {
	dynamic, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteDynamic,
		fmt.Sprintf("Deleted the group session '%s'.", dynamic.Title))
	s.hub.NotifyCollectionChanged("dynamics")
	return nil
}
