package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/session"
	"github.com/saulo-duarte/yt-study-api/internal/youtube"
)

const (
	MessageGenerated = "Quiz generated successfully"
	MessageFallback  = "Quiz generated with fallback (AI services unavailable)"
	FeedbackDefault  = "Good attempt!"
)

var ErrMissingVideo = errors.New("videoUrl or sessionId is required")

// FallbackQuestions is served whenever the AI service cannot produce a quiz.
func FallbackQuestions() []Question {
	return []Question{
		{
			Question: "What is the main topic of this video?",
			Options:  []string{"Topic A", "Topic B", "Topic C", "Topic D"},
			Correct:  0,
		},
		{
			Question: "What key concept is explained in the video?",
			Options:  []string{"Concept 1", "Concept 2", "Concept 3", "Concept 4"},
			Correct:  1,
		},
	}
}

type QuestionSource interface {
	QuizQuestions(ctx context.Context, videoID, videoURL, language string) ([]aiclient.QuizQuestion, error)
}

type SessionLookup interface {
	Get(ctx context.Context, id string) (session.Session, error)
}

type GenerateResult struct {
	VideoURL       string
	Questions      []Question
	Message        string
	Degraded       bool
	UpstreamStatus string
}

type EvaluateInput struct {
	SessionID string
	Answers   AnswerSet
	Submitted int
	Questions []Question
}

type EvaluateResult struct {
	Score     int
	Feedback  string
	Graded    *Score
	Questions []Question
	Answers   AnswerSet
}

type QuizService interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	Evaluate(ctx context.Context, in EvaluateInput) (EvaluateResult, error)
	Attempt(ctx context.Context, sessionID string) (Attempt, error)
}

type quizService struct {
	repo     AttemptRepository
	sessions SessionLookup
	source   QuestionSource
}

func NewService(repo AttemptRepository, sessions SessionLookup, source QuestionSource) QuizService {
	return &quizService{repo: repo, sessions: sessions, source: source}
}

func (s *quizService) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	log := config.WithContext(ctx).WithField("session_id", req.SessionID)

	videoURL := strings.TrimSpace(req.VideoURL)
	videoID := ""
	known := false
	if req.SessionID != "" {
		sess, err := s.sessions.Get(ctx, req.SessionID)
		switch {
		case err == nil:
			known = true
			// The request URL wins; the id and URL sent upstream must name the same video.
			if videoURL == "" {
				videoURL, videoID = sess.VideoURL, sess.VideoID
			}
		case errors.Is(err, session.ErrSessionNotFound) && videoURL != "":
			log.Warn("Quiz requested for unknown session, using videoUrl")
		default:
			return GenerateResult{}, err
		}
	}
	if videoURL == "" {
		return GenerateResult{}, ErrMissingVideo
	}
	if videoID == "" {
		videoID = youtube.VideoID(videoURL)
	}

	result := GenerateResult{VideoURL: videoURL, Message: MessageGenerated}
	upstream, err := s.source.QuizQuestions(ctx, videoID, videoURL, req.Language)
	switch {
	case err != nil:
		log.WithError(err).Warn("Quiz generation failed, serving fallback questions")
		result.UpstreamStatus = session.UpstreamStatus(err)
		s.fallback(&result)
	case len(upstream) == 0:
		log.Warn("AI service returned no questions, serving fallback questions")
		result.UpstreamStatus = "empty"
		s.fallback(&result)
	default:
		result.Questions = fromUpstream(upstream)
	}

	if known {
		s.remember(ctx, log, req.SessionID, videoURL, result.Questions)
	}

	log.WithFields(logrus.Fields{
		"video_id":  videoID,
		"questions": len(result.Questions),
		"degraded":  result.Degraded,
	}).Info("Quiz generated")
	return result, nil
}

func (s *quizService) fallback(result *GenerateResult) {
	result.Questions = FallbackQuestions()
	result.Message = MessageFallback
	result.Degraded = true
}

func (s *quizService) remember(ctx context.Context, log logrus.FieldLogger, sessionID, videoURL string, questions []Question) {
	err := s.repo.Save(ctx, Attempt{
		SessionID: sessionID,
		VideoURL:  videoURL,
		Questions: questions,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to store quiz attempt")
	}
}

// Evaluate keeps score as the number of submitted answers. Correctness is
// reported separately when the questions are known.
func (s *quizService) Evaluate(ctx context.Context, in EvaluateInput) (EvaluateResult, error) {
	log := config.WithContext(ctx).WithField("session_id", in.SessionID)

	result := EvaluateResult{
		Score:    in.Submitted,
		Feedback: FeedbackDefault,
		Answers:  in.Answers,
	}

	alive, err := s.sessionAlive(ctx, in.SessionID)
	if err != nil {
		return EvaluateResult{}, err
	}

	questions := in.Questions
	if len(questions) == 0 && alive {
		attempt, err := s.repo.Get(ctx, in.SessionID)
		if err != nil && !errors.Is(err, ErrAttemptNotFound) {
			return EvaluateResult{}, err
		}
		questions = attempt.Questions
	}
	if len(questions) == 0 {
		log.Info("Answers evaluated without known questions")
		return result, nil
	}

	graded := Grade(questions, in.Answers)
	result.Graded = &graded
	result.Questions = questions

	// Attempts only live as long as their session.
	if alive {
		if _, err := s.repo.Update(ctx, in.SessionID, func(a *Attempt) {
			a.Questions = questions
			a.Answers = in.Answers
			a.Score = &graded
		}); err != nil {
			log.WithError(err).Warn("Failed to store evaluated attempt")
		}
	}

	log.WithFields(logrus.Fields{
		"correct": graded.Correct,
		"total":   graded.Total,
	}).Info("Answers evaluated")
	return result, nil
}

// Attempt returns the stored attempt while its session is alive. An attempt
// that outlived its session is dropped.
func (s *quizService) Attempt(ctx context.Context, sessionID string) (Attempt, error) {
	alive, err := s.sessionAlive(ctx, sessionID)
	if err != nil {
		return Attempt{}, err
	}
	if !alive {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			return Attempt{}, err
		}
		return Attempt{}, ErrAttemptNotFound
	}
	return s.repo.Get(ctx, sessionID)
}

func (s *quizService) sessionAlive(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	_, err := s.sessions.Get(ctx, sessionID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, session.ErrSessionNotFound):
		return false, nil
	default:
		return false, err
	}
}
