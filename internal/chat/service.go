package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/retrieval"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

// Answerer is the part of the AI client used by chat.
type Answerer interface {
	Transcript(ctx context.Context, videoID, language string) (aiclient.Transcript, error)
	Ask(ctx context.Context, question, videoContext string) (string, error)
}

type Service interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
}

type service struct {
	store    session.Store
	client   Answerer
	language string
}

func NewService(store session.Store, client Answerer, language string) Service {
	return &service{store: store, client: client, language: language}
}

func (s *service) Ask(ctx context.Context, sessionID, question string) (string, error) {
	log := config.WithContext(ctx).WithField("session_id", sessionID)

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	videoContext := s.videoContext(ctx, log, sess, question)
	answer, err := s.client.Ask(ctx, question, videoContext)
	if err != nil {
		return "", fmt.Errorf("ask question: %w", err)
	}

	log.WithField("context_chars", len(videoContext)).Info("Question answered")
	return strings.TrimSpace(answer), nil
}

// videoContext returns the transcript passages closest to the question. A
// transcript that cannot be fetched leaves the context empty and the LLM
// answers from the question alone.
func (s *service) videoContext(ctx context.Context, log logrus.FieldLogger, sess session.Session, question string) string {
	transcript := sess.Transcript

	if transcript.Empty() {
		fetched, err := s.client.Transcript(ctx, sess.VideoID, s.language)
		if err != nil {
			log.WithError(err).Warn("Transcript unavailable for chat context")
			return ""
		}
		transcript = fetched
		if _, err := s.store.Update(ctx, sess.ID, func(stored *session.Session) error {
			stored.Transcript = fetched
			return nil
		}); err != nil {
			log.WithError(err).Warn("Failed to cache transcript on session")
		}
	}

	chunks := retrieval.ChunkTranscript(transcript, retrieval.DefaultMaxWords)
	return retrieval.Context(retrieval.TopK(chunks, question, retrieval.DefaultTopK))
}
