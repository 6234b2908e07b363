package quiz_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/quiz"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

type fakeSource struct {
	questions []aiclient.QuizQuestion
	err       error
	calls     int
	videoID   string
	videoURL  string
}

func (f *fakeSource) QuizQuestions(_ context.Context, videoID, videoURL, _ string) ([]aiclient.QuizQuestion, error) {
	f.calls++
	f.videoID, f.videoURL = videoID, videoURL
	return f.questions, f.err
}

func newSessions(t *testing.T, sessions ...session.Session) session.Store {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	for _, s := range sessions {
		if err := store.Put(context.Background(), s); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	return store
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	upstream := []aiclient.QuizQuestion{{Question: "Q1?", Options: []string{"a", "b", "c", "d"}, Correct: 3}}

	t.Run("FromVideoURL", func(t *testing.T) {
		source := &fakeSource{questions: upstream}
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), source)

		result, err := svc.Generate(ctx, quiz.GenerateRequest{VideoURL: "https://youtu.be/abc123"})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if result.Degraded || result.Message != quiz.MessageGenerated || len(result.Questions) != 1 || result.Questions[0].Correct != 3 {
			t.Errorf("unexpected result %+v", result)
		}
		if source.videoID != "abc123" {
			t.Errorf("video id not extracted: %q", source.videoID)
		}
	})

	t.Run("FromSessionStoresAttempt", func(t *testing.T) {
		source := &fakeSource{questions: upstream}
		repo := quiz.NewRepository(time.Hour)
		sessions := newSessions(t, session.Session{ID: "s1", VideoID: "xyz789", VideoURL: "https://www.youtube.com/watch?v=xyz789"})
		svc := quiz.NewService(repo, sessions, source)

		result, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "s1"})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if result.VideoURL != "https://www.youtube.com/watch?v=xyz789" || source.videoID != "xyz789" {
			t.Errorf("session video not used: %+v", result)
		}
		attempt, err := svc.Attempt(ctx, "s1")
		if err != nil {
			t.Fatalf("attempt not stored: %v", err)
		}
		if len(attempt.Questions) != 1 {
			t.Errorf("unexpected attempt %+v", attempt)
		}
	})

	t.Run("RequestURLOverridesSessionVideo", func(t *testing.T) {
		source := &fakeSource{questions: upstream}
		sessions := newSessions(t, session.Session{ID: "s1", VideoID: "xyz789", VideoURL: "https://www.youtube.com/watch?v=xyz789"})
		svc := quiz.NewService(quiz.NewRepository(time.Hour), sessions, source)

		result, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "s1", VideoURL: "https://youtu.be/abc123"})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if source.videoID != "abc123" || source.videoURL != "https://youtu.be/abc123" || result.VideoURL != source.videoURL {
			t.Errorf("id and url disagree: id=%q url=%q", source.videoID, source.videoURL)
		}
	})

	t.Run("UnknownSessionWithoutURL", func(t *testing.T) {
		source := &fakeSource{questions: upstream}
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), source)

		if _, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "missing"}); !errors.Is(err, session.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
		if source.calls != 0 {
			t.Error("AI service called for unknown session")
		}
	})

	t.Run("UnknownSessionWithURL", func(t *testing.T) {
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), &fakeSource{questions: upstream})
		if _, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "missing", VideoURL: "https://youtu.be/abc123"}); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := svc.Attempt(ctx, "missing"); !errors.Is(err, quiz.ErrAttemptNotFound) {
			t.Errorf("attempt stored for unknown session: %v", err)
		}
	})

	fallbacks := []struct {
		name   string
		source *fakeSource
		status string
	}{
		{"Timeout", &fakeSource{err: aiclient.ErrUpstreamTimeout}, "timeout"},
		{"Unavailable", &fakeSource{err: aiclient.ErrUpstreamUnavailable}, "unavailable"},
		{"MissingCredential", &fakeSource{err: aiclient.ErrMissingCredential}, "unavailable"},
		{"Empty", &fakeSource{questions: []aiclient.QuizQuestion{}}, "empty"},
	}
	for _, tt := range fallbacks {
		t.Run("Fallback"+tt.name, func(t *testing.T) {
			svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), tt.source)

			result, err := svc.Generate(ctx, quiz.GenerateRequest{VideoURL: "https://youtu.be/abc123"})
			if err != nil {
				t.Fatalf("fallback must not fail: %v", err)
			}
			if !reflect.DeepEqual(result.Questions, quiz.FallbackQuestions()) {
				t.Errorf("unexpected fallback questions %+v", result.Questions)
			}
			if !result.Degraded || result.Message != quiz.MessageFallback || result.UpstreamStatus != tt.status {
				t.Errorf("unexpected result %+v", result)
			}
		})
	}
}

func TestFallbackQuestionsVerbatim(t *testing.T) {
	qs := quiz.FallbackQuestions()
	if len(qs) != 2 {
		t.Fatalf("expected 2 fallback questions, got %d", len(qs))
	}
	if qs[0].Question != "What is the main topic of this video?" || qs[0].Correct != 0 || qs[0].Options[3] != "Topic D" {
		t.Errorf("unexpected first fallback question %+v", qs[0])
	}
	if qs[1].Question != "What key concept is explained in the video?" || qs[1].Correct != 1 || qs[1].Options[0] != "Concept 1" {
		t.Errorf("unexpected second fallback question %+v", qs[1])
	}

	qs[0].Question = "mutated"
	if quiz.FallbackQuestions()[0].Question == "mutated" {
		t.Error("fallback set must not be shared between callers")
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("ScoreCountsSubmittedAnswers", func(t *testing.T) {
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), &fakeSource{})
		answers, submitted, _ := quiz.ParseAnswers([]byte(`[3,3,3]`))

		result, err := svc.Evaluate(ctx, quiz.EvaluateInput{SessionID: "s1", Answers: answers, Submitted: submitted})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if result.Score != 3 || result.Feedback != quiz.FeedbackDefault || result.Graded != nil {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("GradesAgainstStoredQuiz", func(t *testing.T) {
		repo := quiz.NewRepository(time.Hour)
		sessions := newSessions(t, session.Session{ID: "s1", VideoID: "abc123", VideoURL: "https://youtu.be/abc123"})
		svc := quiz.NewService(repo, sessions, &fakeSource{err: aiclient.ErrUpstreamUnavailable})
		if _, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "s1"}); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		result, err := svc.Evaluate(ctx, quiz.EvaluateInput{SessionID: "s1", Answers: quiz.AnswerSet{0: 0, 1: 2}, Submitted: 2})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if result.Score != 2 || result.Graded == nil || result.Graded.Correct != 1 || result.Graded.Percentage != 50 {
			t.Errorf("unexpected result %+v", result)
		}

		attempt, _ := svc.Attempt(ctx, "s1")
		if attempt.Score == nil || attempt.Score.Correct != 1 || attempt.Answers[1] != 2 {
			t.Errorf("attempt not updated: %+v", attempt)
		}
	})

	t.Run("GradesAgainstSuppliedQuestions", func(t *testing.T) {
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t, session.Session{ID: "s2"}), &fakeSource{})
		result, err := svc.Evaluate(ctx, quiz.EvaluateInput{
			SessionID: "s2",
			Answers:   quiz.AnswerSet{0: 1},
			Submitted: 1,
			Questions: []quiz.Question{{Question: "Q1?", Options: []string{"A", "B"}, Correct: 1}},
		})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if result.Graded == nil || result.Graded.Correct != 1 || result.Graded.Total != 1 {
			t.Errorf("unexpected result %+v", result)
		}
		if _, err := svc.Attempt(ctx, "s2"); err != nil {
			t.Errorf("evaluated attempt should be stored: %v", err)
		}
	})

	t.Run("UnknownSessionIsNotStored", func(t *testing.T) {
		svc := quiz.NewService(quiz.NewRepository(time.Hour), newSessions(t), &fakeSource{})
		for _, id := range []string{"never-created-a", "never-created-b"} {
			result, err := svc.Evaluate(ctx, quiz.EvaluateInput{
				SessionID: id,
				Answers:   quiz.AnswerSet{0: 0},
				Submitted: 1,
				Questions: []quiz.Question{{Question: "Q1?", Options: []string{"A", "B"}, Correct: 0}},
			})
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if result.Graded == nil || result.Graded.Correct != 1 {
				t.Errorf("answers should still be graded: %+v", result)
			}
			if _, err := svc.Attempt(ctx, id); !errors.Is(err, quiz.ErrAttemptNotFound) {
				t.Errorf("%s: expected ErrAttemptNotFound, got %v", id, err)
			}
		}
	})
}

func TestAttemptEndsWithSession(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions(t, session.Session{ID: "s1", VideoID: "abc123", VideoURL: "https://youtu.be/abc123"})
	svc := quiz.NewService(quiz.NewRepository(time.Hour), sessions, &fakeSource{err: aiclient.ErrUpstreamTimeout})

	if _, err := svc.Generate(ctx, quiz.GenerateRequest{SessionID: "s1"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := svc.Attempt(ctx, "s1"); err != nil {
		t.Fatalf("attempt not stored: %v", err)
	}

	if _, err := sessions.Update(ctx, "s1", func(s *session.Session) error {
		s.ExpiresAt = time.Now().Add(-time.Second)
		return nil
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := svc.Attempt(ctx, "s1"); !errors.Is(err, quiz.ErrAttemptNotFound) {
		t.Errorf("expected ErrAttemptNotFound after session expiry, got %v", err)
	}
}
