package service

import (
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// ArchiveService implements the archive screen's bulk operations across
// jobs, candidates and talents.
type ArchiveService interface {
	RestoreAll(actor Actor) error
	DeleteAll(actor Actor) error
}

type archiveService struct {
	jobRepo       repository.JobRepository
	candidateRepo repository.CandidateRepository
	talentRepo    repository.TalentRepository
	history       HistoryService
	hub           *ws.Hub
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(
	jobRepo repository.JobRepository,
	candidateRepo repository.CandidateRepository,
	talentRepo repository.TalentRepository,
	history HistoryService,
	hub *ws.Hub,
) ArchiveService {
	return &archiveService{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		talentRepo:    talentRepo,
		history:       history,
		hub:           hub,
	}
}

// RestoreAll un-archives every archived job, candidate and talent.
func (s *archiveService) RestoreAll(actor Actor) error {
	if err := s.jobRepo.RestoreAllArchived(); err != nil {
		return err
	}
	if err := s.candidateRepo.RestoreAllArchived(); err != nil {
		return err
	}
	if err := s.talentRepo.RestoreAllArchived(); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionRestoreAll, "Restored all archived records.")
	s.notifyAll()
	return nil
}

// DeleteAll permanently removes every archived job, candidate and talent.
func (s *archiveService) DeleteAll(actor Actor) error {
	if err := s.jobRepo.DeleteAllArchived(); err != nil {
		return err
	}
	if err := s.candidateRepo.DeleteAllArchived(); err != nil {
		return err
	}
	if err := s.talentRepo.DeleteAllArchived(); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteAll, "Permanently deleted all archived records.")
	s.notifyAll()
	return nil
}

func (s *archiveService) notifyAll() {
	s.hub.NotifyCollectionChanged("jobs")
	s.hub.NotifyCollectionChanged("candidates")
	s.hub.NotifyCollectionChanged("talents")
}
