package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
)

type timerFixture struct {
	svc   TimerService
	clock int64
}

func newTimerFixture(t *testing.T) *timerFixture {
	t.Helper()
	f := &timerFixture{clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).UnixMilli()}
	f.svc = NewTimerService(repository.NewMemoryTimerRepository(), newTestHub(t), func() int64 { return f.clock })
	return f
}

func (f *timerFixture) advance(d time.Duration) {
	f.clock += d.Milliseconds()
}

func TestTimerStartAndDisplay(t *testing.T) {
	f := newTimerFixture(t)
	ctx := context.Background()

	timer, err := f.svc.Start(ctx, "dyn-1", 10, domain.TimerCountdown)
	require.NoError(t, err)
	assert.True(t, timer.IsRunning)
	assert.Equal(t, int64(600), timer.Duration)

	f.advance(10 * time.Second)
	assert.InDelta(t, 590, TimerDisplay(timer, "dyn-1", f.clock), 0.01)

	// Observers of another dynamic read zero.
	assert.Zero(t, TimerDisplay(timer, "dyn-2", f.clock))
	assert.Zero(t, TimerDisplay(nil, "dyn-1", f.clock))
}

func TestPauseResumeKeepsElapsedTime(t *testing.T) {
	f := newTimerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "dyn-1", 10, domain.TimerCountdown)
	require.NoError(t, err)

	f.advance(10 * time.Second)
	timer, err := f.svc.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, timer.IsRunning)

	// A long pause does not consume timer time.
	f.advance(90 * time.Second)
	assert.InDelta(t, 590, TimerDisplay(timer, "dyn-1", f.clock), 0.01)

	timer, err = f.svc.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, timer.IsRunning)
	assert.Zero(t, timer.PauseTime)
	assert.InDelta(t, 590, TimerDisplay(timer, "dyn-1", f.clock), 0.01)

	f.advance(10 * time.Second)
	assert.InDelta(t, 580, TimerDisplay(timer, "dyn-1", f.clock), 0.01)
}

func TestPauseAndResumeAreNoOpsOutOfState(t *testing.T) {
	f := newTimerFixture(t)
	ctx := context.Background()

	// Nothing started yet.
	timer, err := f.svc.Pause(ctx)
	require.NoError(t, err)
	assert.Nil(t, timer)
	timer, err = f.svc.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, timer)

	_, err = f.svc.Start(ctx, "dyn-1", 5, domain.TimerCountup)
	require.NoError(t, err)

	// Resume while running changes nothing.
	timer, err = f.svc.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, timer.IsRunning)
	assert.Zero(t, timer.PauseTime)
}

func TestResetOnlyForOwningDynamic(t *testing.T) {
	f := newTimerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "dyn-1", 10, domain.TimerCountdown)
	require.NoError(t, err)

	// A stale reset from another session leaves the timer alone.
	timer, err := f.svc.Reset(ctx, "dyn-2")
	require.NoError(t, err)
	assert.True(t, timer.IsRunning)

	timer, err = f.svc.Reset(ctx, "dyn-1")
	require.NoError(t, err)
	assert.False(t, timer.IsRunning)
	assert.Zero(t, timer.StartTime)
	assert.Equal(t, int64(600), timer.Duration)

	// Reset countdown reads as the full duration, reset countup as zero.
	assert.InDelta(t, 600, TimerDisplay(timer, "dyn-1", f.clock), 0.01)
	timer.Mode = domain.TimerCountup
	assert.Zero(t, TimerDisplay(timer, "dyn-1", f.clock))
}

func TestCountdownClampsAtZeroAndCountupGrows(t *testing.T) {
	f := newTimerFixture(t)
	ctx := context.Background()

	timer, err := f.svc.Start(ctx, "dyn-1", 1, domain.TimerCountdown)
	require.NoError(t, err)
	f.advance(2 * time.Minute)
	assert.Zero(t, TimerDisplay(timer, "dyn-1", f.clock))

	timer, err = f.svc.Start(ctx, "dyn-1", 1, domain.TimerCountup)
	require.NoError(t, err)
	f.advance(90 * time.Second)
	assert.InDelta(t, 90, TimerDisplay(timer, "dyn-1", f.clock), 0.01)
}

func TestEndCueFiresOnceOnZeroTransition(t *testing.T) {
	timer := &domain.ActiveDynamicTimer{
		DynamicID: "dyn-1",
		StartTime: 1,
		IsRunning: true,
		Mode:      domain.TimerCountdown,
		Duration:  60,
	}

	assert.Equal(t, CueEnd, TimerCueFor(timer, 1.2, 0))
	// Repeated zero samples stay silent.
	assert.Equal(t, CueNone, TimerCueFor(timer, 0, 0))

	// No cue from a paused or missing timer.
	timer.IsRunning = false
	assert.Equal(t, CueNone, TimerCueFor(timer, 1.2, 0))
	assert.Equal(t, CueNone, TimerCueFor(nil, 1.2, 0))
}

func TestMinuteCueOnWholeMinuteBoundaries(t *testing.T) {
	timer := &domain.ActiveDynamicTimer{
		DynamicID: "dyn-1",
		StartTime: 1,
		IsRunning: true,
		Mode:      domain.TimerCountup,
		Duration:  600,
	}

	assert.Equal(t, CueMinute, TimerCueFor(timer, 59.8, 60.1))
	// Same boundary sampled twice cues once.
	assert.Equal(t, CueNone, TimerCueFor(timer, 60.1, 60.6))
	assert.Equal(t, CueNone, TimerCueFor(timer, 30.1, 30.9))
}
