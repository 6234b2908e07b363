package quiz

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrAttemptNotFound = errors.New("quiz attempt not found")

type AttemptRepository interface {
	Save(ctx context.Context, a Attempt) error
	Get(ctx context.Context, sessionID string) (Attempt, error)
	Update(ctx context.Context, sessionID string, fn func(*Attempt)) (Attempt, error)
	Delete(ctx context.Context, sessionID string) error
	Sweep(now time.Time) int
}

// memoryRepository drops an attempt ttl after its last write. A zero ttl
// keeps attempts until they are deleted.
type memoryRepository struct {
	mu       sync.RWMutex
	attempts map[string]Attempt
	ttl      time.Duration
	now      func() time.Time
}

func NewRepository(ttl time.Duration) AttemptRepository {
	return &memoryRepository{
		attempts: make(map[string]Attempt),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *memoryRepository) Save(_ context.Context, a Attempt) error {
	a.UpdatedAt = r.now()

	r.mu.Lock()
	r.attempts[a.SessionID] = a
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Get(_ context.Context, sessionID string) (Attempt, error) {
	r.mu.RLock()
	a, ok := r.attempts[sessionID]
	r.mu.RUnlock()

	if !ok || r.expired(a, r.now()) {
		return Attempt{}, ErrAttemptNotFound
	}
	return a, nil
}

// Update creates the attempt when it does not exist yet.
func (r *memoryRepository) Update(_ context.Context, sessionID string, fn func(*Attempt)) (Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	a, ok := r.attempts[sessionID]
	if ok && r.expired(a, now) {
		a = Attempt{}
	}
	fn(&a)
	a.SessionID = sessionID
	a.UpdatedAt = now
	r.attempts[sessionID] = a
	return a, nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.attempts, sessionID)
	r.mu.Unlock()
	return nil
}

// Sweep drops expired attempts and reports how many were removed.
func (r *memoryRepository) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, a := range r.attempts {
		if r.expired(a, now) {
			delete(r.attempts, id)
			removed++
		}
	}
	return removed
}

func (r *memoryRepository) expired(a Attempt, now time.Time) bool {
	return r.ttl > 0 && !now.Before(a.UpdatedAt.Add(r.ttl))
}
