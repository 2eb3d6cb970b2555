package service

import (
	"context"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/ws"
)

// TimerCue is an observer-local audible cue derived from consecutive
// display samples. Cues are never part of the shared state.
type TimerCue string

const (
	CueNone   TimerCue = ""
	CueMinute TimerCue = "minute" // short tone on each whole-minute boundary
	CueEnd    TimerCue = "end"    // long tone when a countdown reaches zero
)

// TimerService owns the single shared dynamic timer. State transitions are
// written to the central store; display values are always re-derived by the
// reader from (startTime, pauseTime, isRunning, duration, mode) plus its own
// clock, never computed once by the writer.
type TimerService interface {
	Start(ctx context.Context, dynamicID string, durationMinutes int, mode domain.TimerMode) (*domain.ActiveDynamicTimer, error)
	Pause(ctx context.Context) (*domain.ActiveDynamicTimer, error)
	Resume(ctx context.Context) (*domain.ActiveDynamicTimer, error)
	Reset(ctx context.Context, dynamicID string) (*domain.ActiveDynamicTimer, error)
	State(ctx context.Context) (*domain.ActiveDynamicTimer, error)
}

type timerService struct {
	repo repository.TimerRepository
	hub  *ws.Hub
	now  func() int64 // unix milliseconds
}

// NewTimerService creates a new TimerService
func NewTimerService(repo repository.TimerRepository, hub *ws.Hub, now func() int64) TimerService {
	return &timerService{repo: repo, hub: hub, now: now}
}

// Start always resets into the running state, overwriting any prior timer.
// There is one global timer: starting for a new dynamic steals it.
func (s *timerService) Start(ctx context.Context, dynamicID string, durationMinutes int, mode domain.TimerMode) (*domain.ActiveDynamicTimer, error) {
	timer := &domain.ActiveDynamicTimer{
		DynamicID: dynamicID,
		StartTime: s.now(),
		Duration:  int64(durationMinutes) * 60,
		IsRunning: true,
		Mode:      mode,
	}
	if err := s.repo.Set(ctx, timer); err != nil {
		return nil, err
	}
	s.notify(timer)
	return timer, nil
}

// Pause freezes a running timer. No-op when already paused or reset.
func (s *timerService) Pause(ctx context.Context) (*domain.ActiveDynamicTimer, error) {
	timer, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if timer == nil || !timer.IsRunning {
		return timer, nil
	}
	timer.IsRunning = false
	timer.PauseTime = s.now()
	if err := s.repo.Set(ctx, timer); err != nil {
		return nil, err
	}
	s.notify(timer)
	return timer, nil
}

// Resume shifts the start epoch forward by the paused gap so elapsed
// running time is unaffected by the pause. No-op when not paused.
func (s *timerService) Resume(ctx context.Context) (*domain.ActiveDynamicTimer, error) {
	timer, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if timer == nil || timer.IsRunning || timer.PauseTime == 0 {
		return timer, nil
	}
	pausedFor := s.now() - timer.PauseTime
	timer.StartTime += pausedFor
	timer.IsRunning = true
	timer.PauseTime = 0
	if err := s.repo.Set(ctx, timer); err != nil {
		return nil, err
	}
	s.notify(timer)
	return timer, nil
}

// Reset clears the timer back to idle, but only when it belongs to the
// given dynamic. Duration and mode are left behind as residue.
func (s *timerService) Reset(ctx context.Context, dynamicID string) (*domain.ActiveDynamicTimer, error) {
	timer, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if timer == nil || timer.DynamicID != dynamicID {
		return timer, nil
	}
	timer.StartTime = 0
	timer.IsRunning = false
	timer.PauseTime = 0
	if err := s.repo.Set(ctx, timer); err != nil {
		return nil, err
	}
	s.notify(timer)
	return timer, nil
}

func (s *timerService) State(ctx context.Context) (*domain.ActiveDynamicTimer, error) {
	return s.repo.Get(ctx)
}

func (s *timerService) notify(timer *domain.ActiveDynamicTimer) {
	if s.hub != nil {
		s.hub.BroadcastAll(&ws.Event{Type: ws.EventTimer, Payload: timer})
	}
}

// TimerDisplay derives the display value, in seconds, for an observer of
// dynamicID at instant nowMillis. A timer belonging to another dynamic (or
// no timer at all) reads as zero rather than erroring; a stale reference is
// a silent local reset.
func TimerDisplay(timer *domain.ActiveDynamicTimer, dynamicID string, nowMillis int64) float64 {
	if timer == nil || timer.DynamicID != dynamicID {
		return 0
	}

	// Reset state: a countdown shows its full duration, a countup zero.
	if timer.StartTime == 0 {
		if timer.Mode == domain.TimerCountdown {
			return float64(timer.Duration)
		}
		return 0
	}

	var elapsed float64
	if timer.IsRunning {
		elapsed = float64(nowMillis-timer.StartTime) / 1000
	} else {
		elapsed = float64(timer.PauseTime-timer.StartTime) / 1000
	}

	if timer.Mode == domain.TimerCountdown {
		remaining := float64(timer.Duration) - elapsed
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return elapsed
}

// TimerCueFor compares two consecutive display samples and returns the cue
// to play, if any. The end cue fires only on the transition from a positive
// display to zero, so repeated samples of the zero state stay silent.
func TimerCueFor(timer *domain.ActiveDynamicTimer, prevDisplay, display float64) TimerCue {
	if timer == nil || !timer.IsRunning {
		return CueNone
	}
	if timer.Mode == domain.TimerCountdown && display == 0 {
		if prevDisplay > 0 {
			return CueEnd
		}
		return CueNone
	}
	prev, cur := int(prevDisplay), int(display)
	if cur > 0 && cur%60 == 0 && cur != prev {
		return CueMinute
	}
	return CueNone
}
