package quiz

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := NewRepository(time.Hour).(*memoryRepository)
	repo.now = func() time.Time { return now }

	_ = repo.Save(ctx, Attempt{SessionID: "old", Questions: FallbackQuestions()})
	now = now.Add(30 * time.Minute)
	_, _ = repo.Update(ctx, "fresh", func(a *Attempt) { a.Questions = FallbackQuestions() })

	now = now.Add(45 * time.Minute)
	if _, err := repo.Get(ctx, "old"); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("expired attempt still readable: %v", err)
	}
	if _, err := repo.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh attempt missing: %v", err)
	}

	if removed := repo.Sweep(now); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if removed := repo.Sweep(now.Add(time.Hour)); removed != 1 {
		t.Errorf("second Sweep removed %d, want 1", removed)
	}
	if len(repo.attempts) != 0 {
		t.Errorf("attempts left after sweeps: %d", len(repo.attempts))
	}
}

func TestRepositoryUpdateReplacesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := NewRepository(time.Minute).(*memoryRepository)
	repo.now = func() time.Time { return now }

	_ = repo.Save(ctx, Attempt{SessionID: "s1", VideoURL: "https://youtu.be/abc123"})
	now = now.Add(2 * time.Minute)

	a, _ := repo.Update(ctx, "s1", func(a *Attempt) { a.Answers = AnswerSet{0: 1} })
	if a.VideoURL != "" {
		t.Errorf("expired attempt leaked into update: %+v", a)
	}
}
