package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// ConversationsPerPage is the fixed page size of the conversation list.
const ConversationsPerPage = 10

// ConversationQuery filters and pages the conversation list for one viewer.
type ConversationQuery struct {
	Archived  bool
	Tab       domain.ParticipantKind // candidate partners vs staff partners
	Search    string
	JobID     string
	Status    domain.CandidateStatus
	SortAsc   bool
	Page      int
	HiddenIDs map[uint]bool // viewer-local "deleted for me" message ids
}

// Actor is the authenticated staff member performing a mutation. Candidate
// actions carry a zero Actor; history records are written by recruiters only.
type Actor struct {
	ID   uint
	Name string
}

// MessageService business logic for direct messages and conversation threads
type MessageService interface {
	ListConversations(viewer domain.Participant, q ConversationQuery) ([]*domain.Conversation, *common.Meta, error)
	Thread(viewer domain.Participant, partnerID string, hidden map[uint]bool) ([]*domain.Message, error)
	Send(sender domain.Participant, receiverID, text string, actor Actor) (*domain.Message, error)
	Edit(editor domain.Participant, id uint, text string, actor Actor) (*domain.Message, error)
	DeleteForEveryone(requester domain.Participant, id uint) error
	MarkConversationRead(senderID, receiverID string) error
	DeleteConversation(viewer domain.Participant, partnerID string, actor Actor) error
	ArchiveConversation(viewer domain.Participant, partnerID string, archived bool, actor Actor) error
}

type messageService struct {
	repo          repository.MessageRepository
	userRepo      repository.UserRepository
	candidateRepo repository.CandidateRepository
	history       HistoryService
	hub           *ws.Hub
}

// NewMessageService creates a new MessageService
func NewMessageService(
	repo repository.MessageRepository,
	userRepo repository.UserRepository,
	candidateRepo repository.CandidateRepository,
	history HistoryService,
	hub *ws.Hub,
) MessageService {
	return &messageService{
		repo:          repo,
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		history:       history,
		hub:           hub,
	}
}

// partnerInfo is the directory entry used to resolve a partner id.
type partnerInfo struct {
	name      string
	candidate *domain.Candidate
}

func (s *messageService) directory() (map[string]partnerInfo, error) {
	dir := make(map[string]partnerInfo)

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		// First name only, matching the dashboard's display convention.
		name, _, _ := strings.Cut(u.Username, " ")
		dir[domain.StaffParticipant(u.ID).String()] = partnerInfo{name: name}
	}

	candidates, err := s.candidateRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		dir[domain.ApplicantParticipant(c.ID).String()] = partnerInfo{name: c.Name, candidate: c}
	}
	return dir, nil
}

// aggregate partitions the viewer's flat message log into per-partner
// threads. Threads whose partner cannot be resolved in the directory are
// dropped rather than surfaced as errors; stale ids stay invisible.
func aggregate(messages []*domain.Message, viewerID string, dir map[string]partnerInfo) []*domain.Conversation {
	byPartner := make(map[string]*domain.Conversation)
	var order []string

	for _, msg := range messages {
		partnerID := msg.SenderID
		if partnerID == viewerID {
			partnerID = msg.ReceiverID
		}
		info, known := dir[partnerID]
		if !known {
			continue
		}

		convo, ok := byPartner[partnerID]
		if !ok {
			kind := domain.ParticipantStaff
			if p, err := domain.ParseParticipant(partnerID); err == nil {
				kind = p.Kind
			}
			convo = &domain.Conversation{
				PartnerID:   partnerID,
				PartnerName: info.name,
				PartnerKind: string(kind),
				Candidate:   info.candidate,
			}
			byPartner[partnerID] = convo
			order = append(order, partnerID)
		}

		if convo.LastMessage == nil || laterMessage(msg, convo.LastMessage) {
			convo.LastMessage = msg
		}
		if msg.ReceiverID == viewerID && !msg.IsRead {
			convo.UnreadCount++
		}
	}

	convos := make([]*domain.Conversation, 0, len(order))
	for _, id := range order {
		convos = append(convos, byPartner[id])
	}
	return convos
}

// laterMessage reports whether a supersedes b as the thread's last message.
// Timestamp ties break on message id so the choice is deterministic.
func laterMessage(a, b *domain.Message) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID > b.ID
	}
	return a.Timestamp.After(b.Timestamp)
}

func (s *messageService) ListConversations(viewer domain.Participant, q ConversationQuery) ([]*domain.Conversation, *common.Meta, error) {
	messages, err := s.repo.FindInvolving(viewer.String())
	if err != nil {
		return nil, nil, err
	}
	dir, err := s.directory()
	if err != nil {
		return nil, nil, err
	}
	archived, err := s.repo.FindArchivedPartners(viewer.String())
	if err != nil {
		return nil, nil, err
	}
	archivedSet := make(map[string]bool, len(archived))
	for _, p := range archived {
		archivedSet[p] = true
	}

	convos := aggregate(messages, viewer.String(), dir)
	for _, c := range convos {
		c.IsArchived = archivedSet[c.PartnerID]
	}

	filtered := filterConversations(convos, q)
	sortConversations(filtered, q.SortAsc)

	total := int64(len(filtered))
	totalPages := int(math.Ceil(float64(total) / float64(ConversationsPerPage)))
	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * ConversationsPerPage
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + ConversationsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}

	meta := &common.Meta{
		Page:       page,
		Limit:      ConversationsPerPage,
		Total:      total,
		TotalPages: totalPages,
	}
	return filtered[start:end], meta, nil
}

func filterConversations(convos []*domain.Conversation, q ConversationQuery) []*domain.Conversation {
	tab := q.Tab
	if tab == "" {
		tab = domain.ParticipantApplicant
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*domain.Conversation, 0, len(convos))
	for _, c := range convos {
		if c.IsArchived != q.Archived {
			continue
		}
		if c.PartnerKind != string(tab) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.PartnerName), search) {
			continue
		}
		// Job and status filters only apply on the candidate tab.
		if tab == domain.ParticipantApplicant {
			if c.Candidate == nil {
				continue
			}
			if q.JobID != "" && q.JobID != "all" && c.Candidate.JobID != q.JobID {
				continue
			}
			if q.Status != "" && q.Status != "all" && c.Candidate.Status != q.Status {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func sortConversations(convos []*domain.Conversation, asc bool) {
	ts := func(c *domain.Conversation) time.Time {
		if c.LastMessage == nil {
			return time.Time{}
		}
		return c.LastMessage.Timestamp
	}
	sort.SliceStable(convos, func(i, j int) bool {
		if asc {
			return ts(convos[i]).Before(ts(convos[j]))
		}
		return ts(convos[i]).After(ts(convos[j]))
	})
}

// Thread returns all messages between the viewer and partner, oldest first,
// excluding ids the viewer deleted for themselves. Delete-for-me never
// touches shared state.
func (s *messageService) Thread(viewer domain.Participant, partnerID string, hidden map[uint]bool) ([]*domain.Message, error) {
	if _, err := domain.ParseParticipant(partnerID); err != nil {
		return nil, common.ErrInvalidInput
	}
	messages, err := s.repo.FindBetween(viewer.String(), partnerID)
	if err != nil {
		return nil, err
	}
	if len(hidden) == 0 {
		return messages, nil
	}
	out := make([]*domain.Message, 0, len(messages))
	for _, m := range messages {
		if !hidden[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *messageService) Send(sender domain.Participant, receiverID, text string, actor Actor) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyMessage
	}
	receiver, err := domain.ParseParticipant(receiverID)
	if err != nil {
		return nil, common.ErrInvalidInput
	}
	if receiver == sender {
		return nil, fmt.Errorf("cannot message yourself")
	}

	msg := &domain.Message{
		SenderID:   sender.String(),
		ReceiverID: receiver.String(),
		Text:       text,
		Timestamp:  time.Now(),
		IsRead:     false,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	if actor.ID != 0 {
		s.history.Log(actor, domain.ActionSendMessage, fmt.Sprintf("Sent a message to '%s'.", receiver))
	}
	s.hub.NotifyCollectionChanged("messages")
	return msg, nil
}

func (s *messageService) Edit(editor domain.Participant, id uint, text string, actor Actor) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyMessage
	}
	msg, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != editor.String() {
		return nil, common.ErrForbidden
	}
	if msg.IsDeleted {
		return nil, common.ErrMessageDeleted
	}
	if err := s.repo.UpdateText(id, text, false); err != nil {
		return nil, err
	}
	msg.Text = text

	if actor.ID != 0 {
		s.history.Log(actor, domain.ActionUpdateMessage, "Edited a message.")
	}
	s.hub.NotifyCollectionChanged("messages")
	return msg, nil
}

// DeleteForEveryone tombstones the message: the text becomes a fixed
// placeholder and the row keeps its read/unread state.
func (s *messageService) DeleteForEveryone(requester domain.Participant, id uint) error {
	msg, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if msg.SenderID != requester.String() {
		return common.ErrForbidden
	}
	if err := s.repo.UpdateText(id, domain.DeletedMessagePlaceholder, true); err != nil {
		return err
	}
	s.hub.NotifyCollectionChanged("messages")
	return nil
}

func (s *messageService) MarkConversationRead(senderID, receiverID string) error {
	if err := s.repo.MarkConversationRead(senderID, receiverID); err != nil {
		return err
	}
	s.hub.NotifyCollectionChanged("messages")
	return nil
}

func (s *messageService) DeleteConversation(viewer domain.Participant, partnerID string, actor Actor) error {
	if _, err := domain.ParseParticipant(partnerID); err != nil {
		return common.ErrInvalidInput
	}
	if err := s.repo.DeleteBetween(viewer.String(), partnerID); err != nil {
		return err
	}
	if actor.ID != 0 {
		s.history.Log(actor, domain.ActionDeleteConversation, fmt.Sprintf("Deleted the conversation with '%s'.", partnerID))
	}
	s.hub.NotifyCollectionChanged("messages")
	return nil
}

func (s *messageService) ArchiveConversation(viewer domain.Participant, partnerID string, archived bool, actor Actor) error {
	if _, err := domain.ParseParticipant(partnerID); err != nil {
		return common.ErrInvalidInput
	}
	var err error
	action := domain.ActionArchiveConversation
	detail := fmt.Sprintf("Archived the conversation with '%s'.", partnerID)
	if archived {
		err = s.repo.ArchiveConversation(viewer.String(), partnerID)
	} else {
		err = s.repo.UnarchiveConversation(viewer.String(), partnerID)
		action = domain.ActionUnarchiveConversation
		detail = fmt.Sprintf("Unarchived the conversation with '%s'.", partnerID)
	}
	if err != nil {
		return err
	}
	if actor.ID != 0 {
		s.history.Log(actor, action, detail)
	}
	return nil
}
