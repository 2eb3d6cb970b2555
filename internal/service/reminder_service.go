package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// Reminder window constants: reminders fire inside the 30 minutes before an
// interview, grouped into 5-minute buckets; the "now" window covers the
// first minute after the start instant.
const (
	reminderWindowMinutes = 30
	reminderBucketMinutes = 5
	nowWindow             = time.Minute
)

// ReminderType distinguishes an upcoming reminder from a "happening now"
// notification.
type ReminderType string

const (
	ReminderUpcoming ReminderType = "reminder"
	ReminderNow      ReminderType = "now"
)

// Reminder is the currently displayed interview notification.
type Reminder struct {
	Candidate *domain.Candidate `json:"candidate"`
	Type      ReminderType      `json:"type"`
	Bucket    int               `json:"bucket_minutes"`
	FiredAt   time.Time         `json:"fired_at"`
}

// ledgerKey marks one (candidate, threshold) pair as already notified.
// Bucket 0 is the "now" notification.
type ledgerKey struct {
	candidateID uint
	bucket      int
}

// ReminderScheduler polls the candidate list every tick and fires at most
// one notification per (candidate, threshold) pair. The ledger is held in
// memory only: it is advisory and re-triggering after a restart is
// acceptable.
type ReminderScheduler struct {
	candidateRepo repository.CandidateRepository
	hub           *ws.Hub
	interval      time.Duration
	loc           *time.Location
	now           func() time.Time

	mu     sync.Mutex
	ledger map[ledgerKey]bool
	active *Reminder
}

// NewReminderScheduler creates a new ReminderScheduler
func NewReminderScheduler(candidateRepo repository.CandidateRepository, hub *ws.Hub, interval time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		candidateRepo: candidateRepo,
		hub:           hub,
		interval:      interval,
		loc:           time.Local,
		now:           time.Now,
		ledger:        make(map[ledgerKey]bool),
	}
}

// Run ticks until the context is cancelled.
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-ctx.Done():
			return
		}
	}
}

// Tick runs one evaluation pass against the current candidate list.
func (s *ReminderScheduler) Tick() {
	candidates, err := s.candidateRepo.FindAll()
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("reminder tick: candidate fetch failed")
		return
	}
	s.evaluate(candidates, s.now())
}

func (s *ReminderScheduler) evaluate(candidates []*domain.Candidate, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLedger(candidates, now)

	// "Happening now" takes priority and suppresses bucketed reminders for
	// the rest of this tick.
	if c, ok := s.findStartingNow(candidates, now); ok {
		key := ledgerKey{candidateID: c.ID, bucket: 0}
		if !s.ledger[key] {
			s.ledger[key] = true
			s.display(&Reminder{Candidate: c, Type: ReminderNow, FiredAt: now})
			return
		}
	}

	next, startsAt, ok := s.soonestUpcoming(candidates, now)
	if !ok {
		return
	}
	minsLeft := startsAt.Sub(now).Minutes()
	if minsLeft <= 0 || minsLeft > reminderWindowMinutes {
		return
	}
	bucket := int(math.Ceil(minsLeft/reminderBucketMinutes)) * reminderBucketMinutes
	key := ledgerKey{candidateID: next.ID, bucket: bucket}
	if s.ledger[key] || s.active != nil {
		return
	}
	s.ledger[key] = true
	s.display(&Reminder{Candidate: next, Type: ReminderUpcoming, Bucket: bucket, FiredAt: now})
}

// cleanupLedger drops entries for candidates that no longer have a future
// interview, so the ledger cannot grow without bound as interviews pass or
// are cancelled.
func (s *ReminderScheduler) cleanupLedger(candidates []*domain.Candidate, now time.Time) {
	upcoming := make(map[uint]bool)
	for _, c := range candidates {
		if at, ok := s.interviewStart(c); ok && at.After(now) {
			upcoming[c.ID] = true
		}
	}
	for key := range s.ledger {
		if !upcoming[key.candidateID] {
			delete(s.ledger, key)
		}
	}
}

func (s *ReminderScheduler) findStartingNow(candidates []*domain.Candidate, now time.Time) (*domain.Candidate, bool) {
	for _, c := range candidates {
		at, ok := s.interviewStart(c)
		if !ok {
			continue
		}
		since := now.Sub(at)
		if since >= 0 && since < nowWindow {
			return c, true
		}
	}
	return nil, false
}

func (s *ReminderScheduler) soonestUpcoming(candidates []*domain.Candidate, now time.Time) (*domain.Candidate, time.Time, bool) {
	var best *domain.Candidate
	var bestAt time.Time
	for _, c := range candidates {
		at, ok := s.interviewStart(c)
		if !ok || !at.After(now) {
			continue
		}
		if best == nil || at.Before(bestAt) {
			best = c
			bestAt = at
		}
	}
	return best, bestAt, best != nil
}

// interviewStart resolves the interview instant of a candidate, skipping
// no-shows and unparseable slots.
func (s *ReminderScheduler) interviewStart(c *domain.Candidate) (time.Time, bool) {
	if c.Interview == nil || c.Interview.NoShow {
		return time.Time{}, false
	}
	at, err := c.Interview.StartsAt(s.loc)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func (s *ReminderScheduler) display(r *Reminder) {
	s.active = r
	if s.hub != nil {
		s.hub.BroadcastAll(&ws.Event{Type: ws.EventReminder, Payload: r})
	}
}

// Active returns the reminder currently on display, or nil.
func (s *ReminderScheduler) Active() *Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Dismiss clears the display slot only. The ledger keeps its entry, so a
// dismissed reminder never re-fires.
func (s *ReminderScheduler) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}
