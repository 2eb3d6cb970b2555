package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// newTestHub runs a hub without Redis so services can publish events.
func newTestHub(t *testing.T) *ws.Hub {
	t.Helper()
	hub := ws.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

// In-memory repository fakes shared by the service tests.

type fakeCandidateRepo struct {
	mu     sync.Mutex
	byID   map[uint]*domain.Candidate
	nextID uint
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byID: make(map[uint]*domain.Candidate)}
}

func (r *fakeCandidateRepo) Create(c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	} else if c.ID > r.nextID {
		r.nextID = c.ID
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

func (r *fakeCandidateRepo) FindByID(id uint) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, common.ErrCandidateNotFound
	}
	return c.Clone(), nil
}

func (r *fakeCandidateRepo) FindByEmail(email string) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if strings.EqualFold(c.Resume.Email, email) {
			return c.Clone(), nil
		}
	}
	return nil, common.ErrCandidateNotFound
}

func (r *fakeCandidateRepo) FindAll() ([]*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Candidate, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCandidateRepo) FindByIDs(ids []uint) ([]*domain.Candidate, error) {
	var out []*domain.Candidate
	for _, id := range ids {
		if c, err := r.FindByID(id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) Update(c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return common.ErrCandidateNotFound
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

func (r *fakeCandidateRepo) SetArchived(id uint, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return common.ErrCandidateNotFound
	}
	c.IsArchived = archived
	return nil
}

func (r *fakeCandidateRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrCandidateNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeCandidateRepo) RestoreAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		c.IsArchived = false
	}
	return nil
}

func (r *fakeCandidateRepo) DeleteAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.byID {
		if c.IsArchived {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[string]*domain.Job)}
}

func (r *fakeJobRepo) Create(j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[j.ID] = j
	return nil
}

func (r *fakeJobRepo) FindByID(id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, common.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) FindAll() ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Job, 0, len(r.byID))
	for _, j := range r.byID {
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeJobRepo) FindByStatus(status domain.JobStatus) ([]*domain.Job, error) {
	all, _ := r.FindAll()
	out := all[:0]
	for _, j := range all {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Update(j *domain.Job) error {
	return r.Create(j)
}

func (r *fakeJobRepo) UpdateStatus(id string, status domain.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return common.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (r *fakeJobRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) RestoreAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.byID {
		if j.Status == domain.JobArchived {
			j.Status = domain.JobActive
		}
	}
	return nil
}

func (r *fakeJobRepo) DeleteAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, j := range r.byID {
		if j.Status == domain.JobArchived {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeTalentRepo struct {
	mu      sync.Mutex
	talents []*domain.Talent
	nextID  uint
}

func newFakeTalentRepo() *fakeTalentRepo { return &fakeTalentRepo{} }

func (r *fakeTalentRepo) Create(t *domain.Talent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	cp := *t
	r.talents = append(r.talents, &cp)
	return nil
}

func (r *fakeTalentRepo) FindByID(id uint) (*domain.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.talents {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrTalentNotFound
}

func (r *fakeTalentRepo) FindAll() ([]*domain.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Talent, 0, len(r.talents))
	for _, t := range r.talents {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTalentRepo) ExistsByOriginalCandidateID(candidateID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.talents {
		if t.OriginalCandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTalentRepo) Update(t *domain.Talent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.talents {
		if existing.ID == t.ID {
			cp := *t
			r.talents[i] = &cp
			return nil
		}
	}
	return common.ErrTalentNotFound
}

func (r *fakeTalentRepo) SetArchived(id uint, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.talents {
		if t.ID == id {
			t.IsArchived = archived
			return nil
		}
	}
	return common.ErrTalentNotFound
}

func (r *fakeTalentRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.talents {
		if t.ID == id {
			r.talents = append(r.talents[:i], r.talents[i+1:]...)
			return nil
		}
	}
	return common.ErrTalentNotFound
}

func (r *fakeTalentRepo) RestoreAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.talents {
		t.IsArchived = false
	}
	return nil
}

func (r *fakeTalentRepo) DeleteAllArchived() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.talents[:0]
	for _, t := range r.talents {
		if !t.IsArchived {
			kept = append(kept, t)
		}
	}
	r.talents = kept
	return nil
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uint]*domain.User)}
}

func (r *fakeUserRepo) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = uint(len(r.byID) + 1)
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll() ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return common.ErrUserNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*domain.Message
	archived map[string]map[string]bool // viewer -> partner -> archived
	nextID   uint
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{archived: make(map[string]map[string]bool)}
}

func (r *fakeMessageRepo) Create(m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) FindByID(id uint) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, common.ErrMessageNotFound
}

func (r *fakeMessageRepo) sortLocked() {
	sort.SliceStable(r.messages, func(i, j int) bool {
		a, b := r.messages[i], r.messages[j]
		if a.Timestamp.Equal(b.Timestamp) {
			return a.ID < b.ID
		}
		return a.Timestamp.Before(b.Timestamp)
	})
}

func (r *fakeMessageRepo) FindInvolving(participantID string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sortLocked()
	var out []*domain.Message
	for _, m := range r.messages {
		if m.SenderID == participantID || m.ReceiverID == participantID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindBetween(a, b string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sortLocked()
	var out []*domain.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateText(id uint, text string, isDeleted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.Text = text
			m.IsDeleted = isDeleted
			return nil
		}
	}
	return common.ErrMessageNotFound
}

func (r *fakeMessageRepo) MarkConversationRead(senderID, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) DeleteBetween(a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		between := (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
		if !between {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) ArchiveConversation(viewerID, partnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.archived[viewerID] == nil {
		r.archived[viewerID] = make(map[string]bool)
	}
	r.archived[viewerID][partnerID] = true
	return nil
}

func (r *fakeMessageRepo) UnarchiveConversation(viewerID, partnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.archived[viewerID], partnerID)
	return nil
}

func (r *fakeMessageRepo) FindArchivedPartners(viewerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for p := range r.archived[viewerID] {
		out = append(out, p)
	}
	return out, nil
}

type fakeHistoryRepo struct {
	mu     sync.Mutex
	events []*domain.HistoryEvent
}

func (r *fakeHistoryRepo) Append(e *domain.HistoryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *fakeHistoryRepo) FindAll(page, limit int) ([]*domain.HistoryEvent, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events, int64(len(r.events)), nil
}

// fakeAIService returns canned generations.
type fakeAIService struct {
	invitation string
	replies    []string
	calls      int
}

func (s *fakeAIService) InterviewInvitation(ctx context.Context, candidate *domain.Candidate, job *domain.Job) (string, error) {
	s.calls++
	return s.invitation, nil
}

func (s *fakeAIService) SuggestedReplies(ctx context.Context, transcript []*domain.Message, candidate *domain.Candidate, job *domain.Job) ([]string, error) {
	return s.replies, nil
}
