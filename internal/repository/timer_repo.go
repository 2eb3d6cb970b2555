package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const activeTimerKey = "hireflow:active_dynamic_timer"

// TimerRepository stores the single shared dynamic timer. This is the
// singleton variant of the collection store: get/set/delete without an id.
// Redis keeps the blob visible to every polling client across instances.
type TimerRepository interface {
	Get(ctx context.Context) (*domain.ActiveDynamicTimer, error)
	Set(ctx context.Context, timer *domain.ActiveDynamicTimer) error
	Delete(ctx context.Context) error
}

type timerRepository struct {
	client *redis.Client
}

// NewTimerRepository creates a new TimerRepository
func NewTimerRepository(client *redis.Client) TimerRepository {
	return &timerRepository{client: client}
}

// Get returns the current timer state, or nil when no timer exists.
func (r *timerRepository) Get(ctx context.Context) (*domain.ActiveDynamicTimer, error) {
	data, err := r.client.Get(ctx, activeTimerKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("timer get: %w", err)
	}
	var timer domain.ActiveDynamicTimer
	if err := json.Unmarshal(data, &timer); err != nil {
		return nil, fmt.Errorf("timer decode: %w", err)
	}
	return &timer, nil
}

func (r *timerRepository) Set(ctx context.Context, timer *domain.ActiveDynamicTimer) error {
	data, err := json.Marshal(timer)
	if err != nil {
		return fmt.Errorf("timer encode: %w", err)
	}
	if err := r.client.Set(ctx, activeTimerKey, data, 0).Err(); err != nil {
		return fmt.Errorf("timer set: %w", err)
	}
	return nil
}

func (r *timerRepository) Delete(ctx context.Context) error {
	return r.client.Del(ctx, activeTimerKey).Err()
}

// memoryTimerRepository is the single-instance fallback used when Redis is
// not configured.
type memoryTimerRepository struct {
	mu    sync.Mutex
	timer *domain.ActiveDynamicTimer
}

// NewMemoryTimerRepository creates an in-process TimerRepository
func NewMemoryTimerRepository() TimerRepository {
	return &memoryTimerRepository{}
}

func (r *memoryTimerRepository) Get(ctx context.Context) (*domain.ActiveDynamicTimer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer == nil {
		return nil, nil
	}
	cp := *r.timer
	return &cp, nil
}

func (r *memoryTimerRepository) Set(ctx context.Context, timer *domain.ActiveDynamicTimer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *timer
	r.timer = &cp
	return nil
}

func (r *memoryTimerRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer = nil
	return nil
}
