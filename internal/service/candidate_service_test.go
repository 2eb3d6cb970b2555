package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
)

type candidateFixture struct {
	svc        CandidateService
	candRepo   *fakeCandidateRepo
	jobRepo    *fakeJobRepo
	talentRepo *fakeTalentRepo
	msgRepo    *fakeMessageRepo
	histRepo   *fakeHistoryRepo
	ai         *fakeAIService
	actor      Actor
}

func newCandidateFixture(t *testing.T) *candidateFixture {
	t.Helper()
	candRepo := newFakeCandidateRepo()
	jobRepo := newFakeJobRepo()
	talentRepo := newFakeTalentRepo()
	msgRepo := newFakeMessageRepo()
	userRepo := newFakeUserRepo()
	histRepo := &fakeHistoryRepo{}
	hub := newTestHub(t)
	history := NewHistoryService(histRepo)
	ai := &fakeAIService{invitation: "We would love to interview you."}

	require.NoError(t, userRepo.Create(&domain.User{ID: 1, Username: "Ana Souza", Role: domain.RoleAdmin}))
	require.NoError(t, jobRepo.Create(&domain.Job{ID: "job-1", Title: "Sales Assistant", Status: domain.JobActive}))

	msgService := NewMessageService(msgRepo, userRepo, candRepo, history, hub)
	svc := NewCandidateService(candRepo, jobRepo, talentRepo, msgService, ai, history, hub)
	return &candidateFixture{
		svc:        svc,
		candRepo:   candRepo,
		jobRepo:    jobRepo,
		talentRepo: talentRepo,
		msgRepo:    msgRepo,
		histRepo:   histRepo,
		ai:         ai,
		actor:      Actor{ID: 1, Name: "Ana Souza"},
	}
}

func (f *candidateFixture) seed(t *testing.T, c *domain.Candidate) *domain.Candidate {
	t.Helper()
	if c.JobID == "" {
		c.JobID = "job-1"
	}
	require.NoError(t, f.candRepo.Create(c))
	return c
}

func TestApplySetsPipelineDefaults(t *testing.T) {
	f := newCandidateFixture(t)

	candidate, err := f.svc.Apply(&domain.ApplicationRequest{
		JobID: "job-1",
		Name:  "Bruno Lima",
		Email: "bruno@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, candidate.Status)
	assert.Equal(t, "Careers Portal", candidate.Source)
	assert.GreaterOrEqual(t, candidate.FitScore, 5.0)
	assert.Less(t, candidate.FitScore, 9.0)
	assert.Equal(t, "No previous experience.", candidate.Experience)

	_, err = f.svc.Apply(&domain.ApplicationRequest{JobID: "missing", Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, common.ErrJobNotFound)
}

func TestApprovalFromScreeningOffersInvitation(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{ID: 1, Name: "Bruno", Status: domain.StatusScreening})

	_, err := f.svc.UpdateStatus(f.actor, c.ID, domain.StatusApproved)
	require.NoError(t, err)

	offer := f.svc.PendingOffer()
	require.NotNil(t, offer)
	assert.Equal(t, c.ID, offer.Candidate.ID)
	assert.Equal(t, "Sales Assistant", offer.Job.Title)

	// Accepting generates the invitation and sends it as the recruiter.
	require.NoError(t, f.svc.AcceptOffer(context.Background(), f.actor))
	assert.Nil(t, f.svc.PendingOffer())
	assert.Equal(t, 1, f.ai.calls)

	msgs, err := f.msgRepo.FindBetween(
		domain.StaffParticipant(1).String(), domain.ApplicantParticipant(c.ID).String())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "We would love to interview you.", msgs[0].Text)
}

func TestApprovalFromLaterPhaseDoesNotOffer(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{ID: 1, Name: "Bruno", Status: domain.StatusPending})

	_, err := f.svc.UpdateStatus(f.actor, c.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Nil(t, f.svc.PendingOffer())
}

func TestRejectionMirrorsToTalentPoolOnce(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusScreening,
		FitScore: 6.4, Location: "Porto Alegre (Centro)",
	})

	_, err := f.svc.UpdateStatus(f.actor, c.ID, domain.StatusRejected)
	require.NoError(t, err)

	talents, _ := f.talentRepo.FindAll()
	require.Len(t, talents, 1)
	talent := talents[0]
	assert.Equal(t, c.ID, talent.OriginalCandidateID)
	assert.Equal(t, "Rejected (Screening)", talent.Status)
	assert.Contains(t, talent.RejectionReason, "6.4")
	assert.Equal(t, "Porto Alegre", talent.City)
	assert.Equal(t, "Sales Assistant", talent.DesiredPosition)

	// Re-rejecting after a restore does not duplicate the entry.
	_, err = f.svc.UpdateStatus(f.actor, c.ID, domain.StatusScreening)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.actor, c.ID, domain.StatusRejected)
	require.NoError(t, err)
	talents, _ = f.talentRepo.FindAll()
	assert.Len(t, talents, 1)
}

func TestPostInterviewRejectionReason(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
	})

	_, err := f.svc.UpdateStatus(f.actor, c.ID, domain.StatusRejected)
	require.NoError(t, err)

	talents, _ := f.talentRepo.FindAll()
	require.Len(t, talents, 1)
	assert.Equal(t, "Rejected (Interview)", talents[0].Status)
	assert.Contains(t, talents[0].RejectionReason, "interview stage")
}

func TestUndoRestoresExactSnapshot(t *testing.T) {
	f := newCandidateFixture(t)
	original := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusApproved,
		Skills: []string{"sales", "crm"},
		Interview: &domain.Interview{
			Date: "2026-03-10", Time: "14:00",
			Location: "HQ", Interviewers: []string{"Ana"}, Notes: "bring portfolio",
		},
	})

	updated, err := f.svc.UpdateStatus(f.actor, original.ID, domain.StatusOffer)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffer, updated.Status)

	state := f.svc.PendingUndo()
	require.NotNil(t, state)
	assert.Equal(t, domain.StatusOffer, state.NewStatus)

	restored, err := f.svc.Undo(f.actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, restored.Status)

	stored, err := f.candRepo.FindByID(original.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	require.NotNil(t, stored.Interview)
	assert.Equal(t, "bring portfolio", stored.Interview.Notes)
	assert.Equal(t, []string{"Ana"}, stored.Interview.Interviewers)

	// The slot is consumed.
	assert.Nil(t, f.svc.PendingUndo())
	_, err = f.svc.Undo(f.actor)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUndoWindowRequiresInterviewAndDecision(t *testing.T) {
	f := newCandidateFixture(t)
	noInterview := f.seed(t, &domain.Candidate{ID: 1, Name: "Bruno", Status: domain.StatusApproved})
	withInterview := f.seed(t, &domain.Candidate{
		ID: 2, Name: "Carla", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
	})

	_, err := f.svc.UpdateStatus(f.actor, noInterview.ID, domain.StatusOffer)
	require.NoError(t, err)
	assert.Nil(t, f.svc.PendingUndo(), "no interview, no undo window")

	_, err = f.svc.UpdateStatus(f.actor, withInterview.ID, domain.StatusHired)
	require.NoError(t, err)
	assert.Nil(t, f.svc.PendingUndo(), "hired is not an undoable decision")

	_, err = f.svc.UpdateStatus(f.actor, withInterview.ID, domain.StatusWaitlist)
	require.NoError(t, err)
	assert.NotNil(t, f.svc.PendingUndo())

	f.svc.DismissUndo()
	assert.Nil(t, f.svc.PendingUndo())
}

func TestSecondDecisionRestartsUndoWindow(t *testing.T) {
	f := newCandidateFixture(t)
	a := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
	})
	b := f.seed(t, &domain.Candidate{
		ID: 2, Name: "Carla", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-11", Time: "10:00"},
	})

	_, err := f.svc.UpdateStatus(f.actor, a.ID, domain.StatusOffer)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.actor, b.ID, domain.StatusRejected)
	require.NoError(t, err)

	// The newer transition owns the slot; undo restores Carla, not Bruno.
	restored, err := f.svc.Undo(f.actor)
	require.NoError(t, err)
	assert.Equal(t, b.ID, restored.ID)
	assert.Equal(t, domain.StatusApproved, restored.Status)

	stored, err := f.candRepo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffer, stored.Status, "the first transition stays applied")
}

func TestBulkUpdateSingleOfferAndUndo(t *testing.T) {
	f := newCandidateFixture(t)
	for i := uint(1); i <= 3; i++ {
		f.seed(t, &domain.Candidate{
			ID: i, Name: "Candidate", Status: domain.StatusScreening,
			Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
		})
	}

	require.NoError(t, f.svc.BulkUpdateStatus(f.actor, []uint{1, 2, 3}, domain.StatusApproved))
	offer := f.svc.PendingOffer()
	require.NotNil(t, offer)
	assert.Equal(t, uint(1), offer.Candidate.ID, "first qualifying candidate wins")

	require.NoError(t, f.svc.BulkUpdateStatus(f.actor, []uint{1, 2, 3}, domain.StatusRejected))

	// Every rejection is mirrored, but only one undo window opens.
	talents, _ := f.talentRepo.FindAll()
	assert.Len(t, talents, 3)
	state := f.svc.PendingUndo()
	require.NotNil(t, state)
	assert.Equal(t, uint(1), state.OriginalCandidate.ID)
}

func TestScheduleInterviewMovesToApproved(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{ID: 1, Name: "Bruno", Status: domain.StatusScreening})

	updated, err := f.svc.ScheduleInterview(f.actor, c.ID, domain.Interview{
		Date: "2026-03-10", Time: "14:00", Location: "HQ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.Interview)

	// Scheduling overwrites the single slot.
	updated, err = f.svc.ScheduleInterview(f.actor, c.ID, domain.Interview{
		Date: "2026-03-12", Time: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", updated.Interview.Date)
}

func TestBulkScheduleAndCancel(t *testing.T) {
	f := newCandidateFixture(t)
	f.seed(t, &domain.Candidate{ID: 1, Name: "A", Status: domain.StatusScreening})
	f.seed(t, &domain.Candidate{ID: 2, Name: "B", Status: domain.StatusScreening})

	iv := domain.Interview{Date: "2026-03-10", Time: "14:00", Notes: "individual note"}
	require.NoError(t, f.svc.BulkScheduleInterviews(f.actor, []uint{1, 2}, iv))

	for _, id := range []uint{1, 2} {
		c, err := f.candRepo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, c.Status)
		require.NotNil(t, c.Interview)
		assert.Empty(t, c.Interview.Notes, "notes are per-candidate, not bulk")
	}

	require.NoError(t, f.svc.BulkCancelInterviews(f.actor, []uint{1, 2}))
	for _, id := range []uint{1, 2} {
		c, err := f.candRepo.FindByID(id)
		require.NoError(t, err)
		assert.Nil(t, c.Interview)
	}
}

func TestSetNoShow(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
	})

	updated, err := f.svc.SetNoShow(f.actor, c.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Interview.NoShow)

	noSlot := f.seed(t, &domain.Candidate{ID: 2, Name: "Carla", Status: domain.StatusScreening})
	_, err = f.svc.SetNoShow(f.actor, noSlot.ID, true)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLookupResolvesIDThenEmail(t *testing.T) {
	f := newCandidateFixture(t)
	f.seed(t, &domain.Candidate{
		ID: 1000, Name: "Bruno",
		Resume: domain.Resume{Email: "bruno@example.com"},
	})
	f.seed(t, &domain.Candidate{
		ID: 1001, Name: "Carla",
		Resume: domain.Resume{Email: "1000"},
	})

	// A numeric match on the id wins over an email that looks the same.
	c, err := f.svc.Lookup("1000")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", c.Name)

	c, err = f.svc.Lookup("  BRUNO@example.COM  ")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", c.Name)

	_, err = f.svc.Lookup("nobody@example.com")
	assert.ErrorIs(t, err, common.ErrCandidateNotFound)
	_, err = f.svc.Lookup("   ")
	assert.ErrorIs(t, err, common.ErrCandidateNotFound)
}

func TestArchiveRestoreDelete(t *testing.T) {
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{ID: 1, Name: "Bruno", Status: domain.StatusScreening})

	require.NoError(t, f.svc.Archive(f.actor, c.ID, true))
	stored, _ := f.candRepo.FindByID(c.ID)
	assert.True(t, stored.IsArchived)

	require.NoError(t, f.svc.Archive(f.actor, c.ID, false))
	stored, _ = f.candRepo.FindByID(c.ID)
	assert.False(t, stored.IsArchived)

	require.NoError(t, f.svc.Delete(f.actor, c.ID))
	_, err := f.candRepo.FindByID(c.ID)
	assert.ErrorIs(t, err, common.ErrCandidateNotFound)

	// Every mutation above left an audit record.
	actions := make([]string, 0, len(f.histRepo.events))
	for _, e := range f.histRepo.events {
		actions = append(actions, string(e.Action))
	}
	joined := strings.Join(actions, ",")
	assert.Contains(t, joined, string(domain.ActionArchiveCandidate))
	assert.Contains(t, joined, string(domain.ActionRestoreCandidate))
	assert.Contains(t, joined, string(domain.ActionDeleteCandidate))
}

func TestUndoWindowExpires(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the real undo window")
	}
	f := newCandidateFixture(t)
	c := f.seed(t, &domain.Candidate{
		ID: 1, Name: "Bruno", Status: domain.StatusApproved,
		Interview: &domain.Interview{Date: "2026-03-10", Time: "14:00"},
	})

	_, err := f.svc.UpdateStatus(f.actor, c.ID, domain.StatusOffer)
	require.NoError(t, err)
	require.NotNil(t, f.svc.PendingUndo())

	assert.Eventually(t, func() bool {
		return f.svc.PendingUndo() == nil
	}, UndoWindow+2*time.Second, 100*time.Millisecond)
}
