package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
)

type messageFixture struct {
	svc       MessageService
	msgRepo   *fakeMessageRepo
	userRepo  *fakeUserRepo
	candRepo  *fakeCandidateRepo
	histRepo  *fakeHistoryRepo
	staff     domain.Participant
	candidate domain.Participant
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	msgRepo := newFakeMessageRepo()
	userRepo := newFakeUserRepo()
	candRepo := newFakeCandidateRepo()
	histRepo := &fakeHistoryRepo{}
	hub := newTestHub(t)

	require.NoError(t, userRepo.Create(&domain.User{ID: 1, Username: "Ana Souza", Role: domain.RoleAdmin}))
	require.NoError(t, candRepo.Create(&domain.Candidate{
		ID:     1,
		Name:   "Bruno Lima",
		JobID:  "job-1",
		Status: domain.StatusScreening,
	}))

	svc := NewMessageService(msgRepo, userRepo, candRepo, NewHistoryService(histRepo), hub)
	return &messageFixture{
		svc:       svc,
		msgRepo:   msgRepo,
		userRepo:  userRepo,
		candRepo:  candRepo,
		histRepo:  histRepo,
		staff:     domain.StaffParticipant(1),
		candidate: domain.ApplicantParticipant(1),
	}
}

func (f *messageFixture) seed(t *testing.T, sender, receiver domain.Participant, text string, at time.Time, read bool) *domain.Message {
	t.Helper()
	msg := &domain.Message{
		SenderID:   sender.String(),
		ReceiverID: receiver.String(),
		Text:       text,
		Timestamp:  at,
		IsRead:     read,
	}
	require.NoError(t, f.msgRepo.Create(msg))
	return msg
}

func TestListConversationsAggregatesPerPartner(t *testing.T) {
	f := newMessageFixture(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	f.seed(t, f.candidate, f.staff, "hello", base, true)
	f.seed(t, f.staff, f.candidate, "hi there", base.Add(time.Minute), true)
	f.seed(t, f.candidate, f.staff, "are you there?", base.Add(2*time.Minute), false)
	f.seed(t, f.candidate, f.staff, "ping", base.Add(3*time.Minute), false)

	convos, meta, err := f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	require.Len(t, convos, 1)

	c := convos[0]
	assert.Equal(t, f.candidate.String(), c.PartnerID)
	assert.Equal(t, "Bruno Lima", c.PartnerName)
	assert.Equal(t, string(domain.ParticipantApplicant), c.PartnerKind)
	assert.Equal(t, 2, c.UnreadCount)
	assert.Equal(t, "ping", c.LastMessage.Text)
	require.NotNil(t, c.Candidate)
	assert.Equal(t, int64(1), meta.Total)
}

func TestListConversationsDropsUnknownPartners(t *testing.T) {
	f := newMessageFixture(t)
	now := time.Now()

	ghost := domain.ApplicantParticipant(99)
	f.seed(t, ghost, f.staff, "from a deleted candidate", now, false)
	f.seed(t, f.candidate, f.staff, "real", now, false)

	convos, _, err := f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, f.candidate.String(), convos[0].PartnerID)
}

func TestLastMessageTimestampTieBreaksOnID(t *testing.T) {
	f := newMessageFixture(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	f.seed(t, f.candidate, f.staff, "first", at, true)
	f.seed(t, f.candidate, f.staff, "second", at, true)

	convos, _, err := f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, "second", convos[0].LastMessage.Text)
}

func TestListConversationsFilters(t *testing.T) {
	f := newMessageFixture(t)
	now := time.Now()

	require.NoError(t, f.candRepo.Create(&domain.Candidate{
		ID: 2, Name: "Carla Mendes", JobID: "job-2", Status: domain.StatusApproved,
	}))
	require.NoError(t, f.userRepo.Create(&domain.User{ID: 2, Username: "Diego Alves"}))

	other := domain.ApplicantParticipant(2)
	colleague := domain.StaffParticipant(2)
	f.seed(t, f.candidate, f.staff, "msg a", now, true)
	f.seed(t, other, f.staff, "msg b", now, true)
	f.seed(t, colleague, f.staff, "msg c", now, true)

	// Candidate tab by default, staff partners excluded.
	convos, _, err := f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	assert.Len(t, convos, 2)

	// Staff tab.
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Tab: domain.ParticipantStaff})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, "Diego", convos[0].PartnerName)

	// Name search is case-insensitive substring.
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Search: "carla"})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, other.String(), convos[0].PartnerID)

	// Job and status filters apply on the candidate tab.
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{JobID: "job-2"})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Status: domain.StatusScreening})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.Equal(t, f.candidate.String(), convos[0].PartnerID)

	// Archived threads move to the archived partition.
	require.NoError(t, f.svc.ArchiveConversation(f.staff, other.String(), true, Actor{ID: 1, Name: "Ana"}))
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	assert.Len(t, convos, 1)
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Archived: true})
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.True(t, convos[0].IsArchived)
}

func TestListConversationsPagination(t *testing.T) {
	f := newMessageFixture(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i := uint(10); i < 35; i++ {
		require.NoError(t, f.candRepo.Create(&domain.Candidate{ID: i, Name: "Candidate", JobID: "job-1"}))
		f.seed(t, domain.ApplicantParticipant(i), f.staff, "hi", base.Add(time.Duration(i)*time.Minute), true)
	}

	convos, meta, err := f.svc.ListConversations(f.staff, ConversationQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, convos, ConversationsPerPage)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, convos, 5)

	// Default sort is newest first.
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicantParticipant(34).String(), convos[0].PartnerID)

	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{Page: 1, SortAsc: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicantParticipant(10).String(), convos[0].PartnerID)
}

func TestSendValidation(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Send(f.staff, f.candidate.String(), "   ", Actor{ID: 1})
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	_, err = f.svc.Send(f.staff, f.staff.String(), "hello me", Actor{ID: 1})
	assert.Error(t, err)

	_, err = f.svc.Send(f.staff, "nonsense", "hello", Actor{ID: 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	msg, err := f.svc.Send(f.staff, f.candidate.String(), "hello", Actor{ID: 1, Name: "Ana"})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)
	assert.Len(t, f.histRepo.events, 1)

	// Candidate sends carry no actor and write no history.
	_, err = f.svc.Send(f.candidate, f.staff.String(), "hi back", Actor{})
	require.NoError(t, err)
	assert.Len(t, f.histRepo.events, 1)
}

func TestMarkConversationReadIsIdempotent(t *testing.T) {
	f := newMessageFixture(t)
	now := time.Now()
	f.seed(t, f.candidate, f.staff, "one", now, false)
	f.seed(t, f.candidate, f.staff, "two", now.Add(time.Second), false)

	require.NoError(t, f.svc.MarkConversationRead(f.candidate.String(), f.staff.String()))
	convos, _, err := f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, convos[0].UnreadCount)

	require.NoError(t, f.svc.MarkConversationRead(f.candidate.String(), f.staff.String()))
	convos, _, err = f.svc.ListConversations(f.staff, ConversationQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, convos[0].UnreadCount)
}

func TestEditOnlyBySenderAndNotDeleted(t *testing.T) {
	f := newMessageFixture(t)
	msg, err := f.svc.Send(f.staff, f.candidate.String(), "original", Actor{ID: 1})
	require.NoError(t, err)

	_, err = f.svc.Edit(f.candidate, msg.ID, "hijack", Actor{})
	assert.ErrorIs(t, err, common.ErrForbidden)

	edited, err := f.svc.Edit(f.staff, msg.ID, "fixed", Actor{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "fixed", edited.Text)

	require.NoError(t, f.svc.DeleteForEveryone(f.staff, msg.ID))
	_, err = f.svc.Edit(f.staff, msg.ID, "too late", Actor{ID: 1})
	assert.ErrorIs(t, err, common.ErrMessageDeleted)
}

func TestDeleteForEveryoneTombstones(t *testing.T) {
	f := newMessageFixture(t)
	msg, err := f.svc.Send(f.staff, f.candidate.String(), "secret", Actor{ID: 1})
	require.NoError(t, err)
	require.NoError(t, f.msgRepo.MarkConversationRead(f.staff.String(), f.candidate.String()))

	err = f.svc.DeleteForEveryone(f.candidate, msg.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, f.svc.DeleteForEveryone(f.staff, msg.ID))
	stored, err := f.msgRepo.FindByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeletedMessagePlaceholder, stored.Text)
	assert.True(t, stored.IsDeleted)
	assert.True(t, stored.IsRead, "read state survives deletion")
}

func TestThreadHidesViewerLocalDeletes(t *testing.T) {
	f := newMessageFixture(t)
	now := time.Now()
	a := f.seed(t, f.staff, f.candidate, "one", now, true)
	f.seed(t, f.candidate, f.staff, "two", now.Add(time.Second), true)

	msgs, err := f.svc.Thread(f.staff, f.candidate.String(), map[uint]bool{a.ID: true})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "two", msgs[0].Text)
}
