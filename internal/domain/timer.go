package domain

// TimerMode selects whether the shared timer counts down or up.
type TimerMode string

const (
	TimerCountdown TimerMode = "countdown"
	TimerCountup   TimerMode = "countup"
)

// ActiveDynamicTimer is the single shared timer of the currently running
// group-interview session. Canonical state lives in one central blob; every
// observer re-derives the display value from this state plus its own clock.
//
// Invariants: PauseTime is non-zero only when IsRunning is false and the
// timer was previously started. StartTime is zero only in the reset state.
// Times are unix milliseconds so independently-polling clients agree on the
// epoch.
type ActiveDynamicTimer struct {
	DynamicID string    `json:"dynamic_id"`
	StartTime int64     `json:"start_time"`
	Duration  int64     `json:"duration"`
	IsRunning bool      `json:"is_running"`
	Mode      TimerMode `json:"mode"`
	PauseTime int64     `json:"pause_time"`
}

// StartTimerRequest starts (and always resets) the shared timer.
type StartTimerRequest struct {
	DynamicID       string    `json:"dynamic_id" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Mode            TimerMode `json:"mode" binding:"required"`
}

// ResetTimerRequest resets the timer if it belongs to the given dynamic.
type ResetTimerRequest struct {
	DynamicID string `json:"dynamic_id" binding:"required"`
}
