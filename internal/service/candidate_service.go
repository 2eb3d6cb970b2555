package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// UndoWindow is how long a post-interview decision can be taken back.
const UndoWindow = 6 * time.Second

// UndoState holds the pre-transition snapshot while the undo window is
// open. It is strictly local to this process and never synchronized.
type UndoState struct {
	OriginalCandidate *domain.Candidate     `json:"original_candidate"`
	NewStatus         domain.CandidateStatus `json:"new_status"`
}

// AIMessageOffer asks the recruiter whether to send a generated interview
// invitation to a freshly approved candidate.
type AIMessageOffer struct {
	Candidate *domain.Candidate `json:"candidate"`
	Job       *domain.Job       `json:"job"`
}

// CandidateService drives the candidate pipeline: applications, status
// transitions with their side effects, interview scheduling, the undo
// window, and the public status-check lookup.
type CandidateService interface {
	List() ([]*domain.Candidate, error)
	Get(id uint) (*domain.Candidate, error)
	Apply(req *domain.ApplicationRequest) (*domain.Candidate, error)
	Update(actor Actor, updated *domain.Candidate) (*domain.Candidate, error)
	UpdateStatus(actor Actor, id uint, status domain.CandidateStatus) (*domain.Candidate, error)
	BulkUpdateStatus(actor Actor, ids []uint, status domain.CandidateStatus) error

	Undo(actor Actor) (*domain.Candidate, error)
	PendingUndo() *UndoState
	DismissUndo()

	PendingOffer() *AIMessageOffer
	AcceptOffer(ctx context.Context, actor Actor) error
	DismissOffer()

	ScheduleInterview(actor Actor, id uint, interview domain.Interview) (*domain.Candidate, error)
	BulkScheduleInterviews(actor Actor, ids []uint, interview domain.Interview) error
	BulkCancelInterviews(actor Actor, ids []uint) error
	SetNoShow(actor Actor, id uint, noShow bool) (*domain.Candidate, error)

	Archive(actor Actor, id uint, archived bool) error
	Delete(actor Actor, id uint) error

	Lookup(query string) (*domain.Candidate, error)
}

type candidateService struct {
	repo       repository.CandidateRepository
	jobRepo    repository.JobRepository
	talentRepo repository.TalentRepository
	msgService MessageService
	aiService  AIService
	history    HistoryService
	hub        *ws.Hub

	mu        sync.Mutex
	undo      *UndoState
	undoTimer *time.Timer
	offer     *AIMessageOffer
}

// NewCandidateService creates a new CandidateService
func NewCandidateService(
	repo repository.CandidateRepository,
	jobRepo repository.JobRepository,
	talentRepo repository.TalentRepository,
	msgService MessageService,
	aiService AIService,
	history HistoryService,
	hub *ws.Hub,
) CandidateService {
	return &candidateService{
		repo:       repo,
		jobRepo:    jobRepo,
		talentRepo: talentRepo,
		msgService: msgService,
		aiService:  aiService,
		history:    history,
		hub:        hub,
	}
}

func (s *candidateService) List() ([]*domain.Candidate, error) {
	return s.repo.FindAll()
}

func (s *candidateService) Get(id uint) (*domain.Candidate, error) {
	return s.repo.FindByID(id)
}

// Apply creates a new candidate from a public careers-portal submission.
// Candidates do not write history; audit records come from recruiters.
func (s *candidateService) Apply(req *domain.ApplicationRequest) (*domain.Candidate, error) {
	if _, err := s.jobRepo.FindByID(req.JobID); err != nil {
		return nil, err
	}

	experience := "No previous experience."
	if req.HasExperience {
		experience = req.ExperienceDetails
		if experience == "" {
			experience = "Previous experience in the field."
		}
	}

	candidate := &domain.Candidate{
		Name:            req.Name,
		Age:             req.Age,
		MaritalStatus:   req.MaritalStatus,
		Location:        req.Location,
		Experience:      experience,
		Education:       req.Education,
		Skills:          req.Skills,
		Summary:         req.PersonalSummary,
		JobID:           req.JobID,
		FitScore:        baseFitScore(),
		Status:          domain.StatusApplied,
		ApplicationDate: time.Now(),
		Source:          "Careers Portal",
		ResumeURL:       req.ResumeURL,
		Resume: domain.Resume{
			ProfessionalExperience: req.Experiences,
			Courses:                req.Courses,
			Availability:           strings.Join(req.Availability, ", "),
			Phone:                  req.Phone,
			Email:                  req.Email,
			PersonalSummary:        req.PersonalSummary,
			OwnTransport:           req.OwnTransport,
			Motivation:             req.Motivation,
			FiveYearPlan:           req.FiveYearPlan,
		},
	}
	if err := s.repo.Create(candidate); err != nil {
		return nil, err
	}
	s.hub.NotifyCollectionChanged("candidates")
	return candidate, nil
}

// baseFitScore assigns the initial compatibility estimate in [5.0, 9.0).
// The score is opaque plain data to the rest of the pipeline.
func baseFitScore() float64 {
	return float64(int((rand.Float64()*4+5)*10)) / 10
}

// Update saves a full candidate record, applying status-transition side
// effects when the status changed.
func (s *candidateService) Update(actor Actor, updated *domain.Candidate) (*domain.Candidate, error) {
	original, err := s.repo.FindByID(updated.ID)
	if err != nil {
		return nil, err
	}

	s.applySideEffects(actor, original, updated, true, true)

	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}

	if original.Status != updated.Status {
		s.history.Log(actor, domain.ActionUpdateCandidate,
			fmt.Sprintf("Changed the status of '%s' to '%s'.", original.Name, updated.Status))
	} else {
		s.history.Log(actor, domain.ActionUpdateCandidate,
			fmt.Sprintf("Updated candidate '%s'.", updated.Name))
	}
	s.hub.NotifyCollectionChanged("candidates")
	return updated, nil
}

func (s *candidateService) UpdateStatus(actor Actor, id uint, status domain.CandidateStatus) (*domain.Candidate, error) {
	original, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	updated := original.Clone()
	updated.Status = status
	return s.Update(actor, updated)
}

// BulkUpdateStatus applies the same transition to several candidates.
// Rejection mirroring happens per candidate, but the batch opens at most
// one AI offer and one undo window (first qualifying candidate in
// iteration order). That asymmetry is intentional and preserved.
func (s *candidateService) BulkUpdateStatus(actor Actor, ids []uint, status domain.CandidateStatus) error {
	candidates, err := s.repo.FindByIDs(ids)
	if err != nil {
		return err
	}

	offerTaken, undoTaken := false, false
	for _, original := range candidates {
		updated := original.Clone()
		updated.Status = status

		allowOffer := !offerTaken
		allowUndo := !undoTaken
		fired := s.applySideEffects(actor, original, updated, allowOffer, allowUndo)
		if fired.offer {
			offerTaken = true
		}
		if fired.undo {
			undoTaken = true
		}

		if err := s.repo.Update(updated); err != nil {
			return err
		}
	}

	if len(candidates) > 0 {
		s.history.Log(actor, domain.ActionUpdateCandidate,
			fmt.Sprintf("Bulk-updated the status of %d candidates.", len(candidates)))
	}
	s.hub.NotifyCollectionChanged("candidates")
	return nil
}

type firedEffects struct {
	offer bool
	undo  bool
}

// applySideEffects reacts to specific status transitions. Transitions are
// never rejected; the pipeline allows recruiter overrides between any two
// phases.
func (s *candidateService) applySideEffects(actor Actor, original, updated *domain.Candidate, allowOffer, allowUndo bool) firedEffects {
	var fired firedEffects

	statusChanged := original.Status != updated.Status

	// Approval from early phases offers an AI-generated invitation.
	if allowOffer && updated.Status == domain.StatusApproved &&
		(original.Status == domain.StatusApplied || original.Status == domain.StatusScreening) {
		if job, err := s.jobRepo.FindByID(updated.JobID); err == nil {
			s.setOffer(&AIMessageOffer{Candidate: updated.Clone(), Job: job})
			fired.offer = true
		}
	}

	// Rejection mirrors the candidate into the talent pool, once.
	if updated.Status == domain.StatusRejected && original.Status != domain.StatusRejected {
		s.mirrorToTalentPool(actor, original)
	}

	// Post-interview decisions open the undo window.
	if allowUndo && statusChanged && updated.Status.IsDecision() && original.Interview != nil {
		s.openUndoWindow(original.Clone(), updated.Status)
		fired.undo = true
	}

	return fired
}

func (s *candidateService) mirrorToTalentPool(actor Actor, original *domain.Candidate) {
	exists, err := s.talentRepo.ExistsByOriginalCandidateID(original.ID)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Uint("candidate_id", original.ID).
			Msg("talent pool lookup failed")
		return
	}
	if exists {
		return
	}

	jobTitle := "Previous Position"
	if job, err := s.jobRepo.FindByID(original.JobID); err == nil {
		jobTitle = job.Title
	}

	screeningRejection := original.Status == domain.StatusApplied || original.Status == domain.StatusScreening
	status := "Rejected (Interview)"
	reason := "Not approved at the interview stage on behavioral or technical criteria."
	if screeningRejection {
		status = "Rejected (Screening)"
		reason = fmt.Sprintf("Rejected at initial screening for low compatibility (score: %.1f).", original.FitScore)
	}

	city, _, _ := strings.Cut(original.Location, "(")
	talent := &domain.Talent{
		OriginalCandidateID: original.ID,
		Name:                original.Name,
		Age:                 original.Age,
		City:                strings.TrimSpace(city),
		Education:           original.Education,
		Experience:          original.Experience,
		Skills:              append([]string(nil), original.Skills...),
		Potential:           original.FitScore,
		Status:              status,
		DesiredPosition:     jobTitle,
		AvatarURL:           original.AvatarURL,
		Gender:              original.Gender,
		RejectionReason:     reason,
	}
	if err := s.talentRepo.Create(talent); err != nil {
		logger.GetLogger().Error().Err(err).Uint("candidate_id", original.ID).
			Msg("talent pool mirror failed")
		return
	}
	s.history.Log(actor, domain.ActionCreateTalent,
		fmt.Sprintf("Added '%s' to the talent pool.", talent.Name))
	s.hub.NotifyCollectionChanged("talents")
}

// openUndoWindow arms (or re-arms) the 6-second undo window with a deep
// snapshot of the pre-transition candidate. A second qualifying transition
// cancels the previous timeout and restarts the window.
func (s *candidateService) openUndoWindow(snapshot *domain.Candidate, newStatus domain.CandidateStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undoTimer != nil {
		s.undoTimer.Stop()
	}
	s.undo = &UndoState{OriginalCandidate: snapshot, NewStatus: newStatus}
	s.undoTimer = time.AfterFunc(UndoWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Window expired: the snapshot is discarded silently.
		s.undo = nil
		s.undoTimer = nil
	})
}

// Undo restores the exact pre-transition snapshot and cancels the pending
// expiry.
func (s *candidateService) Undo(actor Actor) (*domain.Candidate, error) {
	s.mu.Lock()
	state := s.undo
	if state != nil {
		if s.undoTimer != nil {
			s.undoTimer.Stop()
			s.undoTimer = nil
		}
		s.undo = nil
	}
	s.mu.Unlock()

	if state == nil {
		return nil, common.ErrNotFound
	}

	original := state.OriginalCandidate
	if err := s.repo.Update(original); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateCandidate,
		fmt.Sprintf("Undid the status change for '%s'.", original.Name))
	s.hub.NotifyCollectionChanged("candidates")
	return original, nil
}

func (s *candidateService) PendingUndo() *UndoState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo
}

// DismissUndo closes the toast without restoring; the window simply ends.
func (s *candidateService) DismissUndo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undoTimer != nil {
		s.undoTimer.Stop()
		s.undoTimer = nil
	}
	s.undo = nil
}

func (s *candidateService) setOffer(offer *AIMessageOffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offer = offer
}

func (s *candidateService) PendingOffer() *AIMessageOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offer
}

// AcceptOffer generates the invitation and sends it as a message from the
// accepting recruiter. A failed or empty generation sends nothing.
func (s *candidateService) AcceptOffer(ctx context.Context, actor Actor) error {
	s.mu.Lock()
	offer := s.offer
	s.offer = nil
	s.mu.Unlock()

	if offer == nil {
		return common.ErrNotFound
	}

	text, err := s.aiService.InterviewInvitation(ctx, offer.Candidate, offer.Job)
	if err != nil || text == "" {
		return nil
	}
	sender := domain.StaffParticipant(actor.ID)
	receiver := domain.ApplicantParticipant(offer.Candidate.ID)
	_, err = s.msgService.Send(sender, receiver.String(), text, actor)
	return err
}

func (s *candidateService) DismissOffer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offer = nil
}

// ScheduleInterview sets the candidate's single interview slot and moves
// them to approved. Scheduling again overwrites the slot.
func (s *candidateService) ScheduleInterview(actor Actor, id uint, interview domain.Interview) (*domain.Candidate, error) {
	original, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	updated := original.Clone()
	updated.Interview = &interview
	updated.Status = domain.StatusApproved

	s.applySideEffects(actor, original, updated, true, true)
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateCandidate,
		fmt.Sprintf("Scheduled an interview for '%s'.", updated.Name))
	s.hub.NotifyCollectionChanged("candidates")
	return updated, nil
}

func (s *candidateService) BulkScheduleInterviews(actor Actor, ids []uint, interview domain.Interview) error {
	candidates, err := s.repo.FindByIDs(ids)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		updated := c.Clone()
		iv := interview
		iv.Notes = ""
		updated.Interview = &iv
		updated.Status = domain.StatusApproved
		if err := s.repo.Update(updated); err != nil {
			return err
		}
	}
	s.history.Log(actor, domain.ActionUpdateCandidate,
		fmt.Sprintf("Bulk-scheduled interviews for %d candidates.", len(candidates)))
	s.hub.NotifyCollectionChanged("candidates")
	return nil
}

func (s *candidateService) BulkCancelInterviews(actor Actor, ids []uint) error {
	candidates, err := s.repo.FindByIDs(ids)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		updated := c.Clone()
		updated.Interview = nil
		updated.Status = domain.StatusApproved
		if err := s.repo.Update(updated); err != nil {
			return err
		}
	}
	s.history.Log(actor, domain.ActionUpdateCandidate,
		fmt.Sprintf("Bulk-cancelled interviews for %d candidates.", len(candidates)))
	s.hub.NotifyCollectionChanged("candidates")
	return nil
}

// SetNoShow flags the interview slot after the fact. No-show interviews are
// excluded from reminders.
func (s *candidateService) SetNoShow(actor Actor, id uint, noShow bool) (*domain.Candidate, error) {
	candidate, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if candidate.Interview == nil {
		return nil, common.ErrNotFound
	}
	updated := candidate.Clone()
	updated.Interview.NoShow = noShow
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateCandidate,
		fmt.Sprintf("Updated the interview attendance of '%s'.", candidate.Name))
	s.hub.NotifyCollectionChanged("candidates")
	return updated, nil
}

func (s *candidateService) Archive(actor Actor, id uint, archived bool) error {
	candidate, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.SetArchived(id, archived); err != nil {
		return err
	}
	action := domain.ActionArchiveCandidate
	detail := fmt.Sprintf("Archived candidate '%s'.", candidate.Name)
	if !archived {
		action = domain.ActionRestoreCandidate
		detail = fmt.Sprintf("Restored candidate '%s'.", candidate.Name)
	}
	s.history.Log(actor, action, detail)
	s.hub.NotifyCollectionChanged("candidates")
	return nil
}

func (s *candidateService) Delete(actor Actor, id uint) error {
	candidate, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteCandidate,
		fmt.Sprintf("Permanently deleted candidate '%s'.", candidate.Name))
	s.hub.NotifyCollectionChanged("candidates")
	return nil
}

// Lookup resolves a free-text identifier from the public status-check page
// to at most one candidate: a numeric id match is tried first, then a
// case-insensitive email match. A miss is a plain not-found result.
func (s *candidateService) Lookup(query string) (*domain.Candidate, error) {
	input := strings.TrimSpace(query)
	if input == "" {
		return nil, common.ErrCandidateNotFound
	}

	if id, err := strconv.ParseUint(input, 10, 64); err == nil {
		if candidate, err := s.repo.FindByID(uint(id)); err == nil {
			return candidate, nil
		}
	}

	candidate, err := s.repo.FindByEmail(input)
	if err != nil {
		return nil, common.ErrCandidateNotFound
	}
	return candidate, nil
}
