package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions for the lifetime of the process. Update is atomic per
// key: the callback runs while the store lock is held.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (Session, error)
	Delete(ctx context.Context, id string) error
	Sweep(now time.Time) int
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memoryStore) Put(_ context.Context, s Session) error {
	now := m.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.ExpiresAt.IsZero() && m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || s.Expired(m.now()) {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *memoryStore) Update(_ context.Context, id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Expired(m.now()) {
		return Session{}, ErrSessionNotFound
	}
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	s.ID = id
	m.sessions[id] = s
	return s, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (m *memoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Sweeper drops expired entries and reports how many were removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// StartJanitor sweeps the store, and any state tied to its sessions, every
// interval until ctx is cancelled.
func StartJanitor(ctx context.Context, store Store, interval time.Duration, related ...Sweeper) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed := store.Sweep(now)
				for _, sw := range related {
					removed += sw.Sweep(now)
				}
				if removed > 0 {
					config.Logger.WithField("removed", removed).Info("Expired sessions swept")
				}
			}
		}
	}()
}
