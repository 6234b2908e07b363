package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/youtube"
)

const (
	FallbackTranscript = "This is a sample transcript. AI services are currently unavailable."
	FallbackSummary    = "This is a sample summary. AI services are currently unavailable."
)

// ContentSource is the slice of the AI client the session handlers need.
type ContentSource interface {
	Transcript(ctx context.Context, videoID, language string) (aiclient.Transcript, error)
	Summary(ctx context.Context, videoID, language string) (string, error)
}

type TranscriptResult struct {
	Transcript     aiclient.Transcript
	Degraded       bool
	UpstreamStatus string
}

type SummaryResult struct {
	Summary        string
	Degraded       bool
	UpstreamStatus string
}

type Service interface {
	Create(ctx context.Context, videoURL string, status Status) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Transcript(ctx context.Context, sessionID, videoID, language string) TranscriptResult
	Summary(ctx context.Context, sessionID, videoID, language string) SummaryResult
}

type service struct {
	store  Store
	source ContentSource
}

func NewService(store Store, source ContentSource) Service {
	return &service{store: store, source: source}
}

func (s *service) Create(ctx context.Context, videoURL string, status Status) (Session, error) {
	log := config.WithContext(ctx)

	videoID, ok := youtube.Parse(videoURL)
	if !ok {
		videoID = youtube.PlaceholderVideoID
		log.WithField("video_url", videoURL).Warn("Could not extract a video id, using placeholder")
	}

	sess := Session{
		ID:       uuid.NewString(),
		VideoID:  videoID,
		VideoURL: videoURL,
		Status:   status,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		log.WithError(err).Error("Failed to store session")
		return Session{}, err
	}

	stored, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return Session{}, err
	}
	log.WithFields(logrus.Fields{
		"session_id": stored.ID,
		"video_id":   stored.VideoID,
	}).Info("Session created")
	return stored, nil
}

func (s *service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Get(ctx, id)
}

func (s *service) Transcript(ctx context.Context, sessionID, videoID, language string) TranscriptResult {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"session_id": sessionID, "video_id": videoID})

	transcript, err := s.source.Transcript(ctx, videoID, language)
	if err != nil {
		log.WithError(err).Warn("Transcript unavailable, serving fallback")
		return TranscriptResult{
			Transcript:     aiclient.Transcript{Text: FallbackTranscript},
			Degraded:       true,
			UpstreamStatus: UpstreamStatus(err),
		}
	}

	s.markCompleted(ctx, log, sessionID, func(sess *Session) {
		if !transcript.Empty() {
			sess.Transcript = transcript
		}
	})
	log.Info("Transcript retrieved from AI service")
	return TranscriptResult{Transcript: transcript}
}

func (s *service) Summary(ctx context.Context, sessionID, videoID, language string) SummaryResult {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"session_id": sessionID, "video_id": videoID})

	summary, err := s.source.Summary(ctx, videoID, language)
	if err != nil {
		log.WithError(err).Warn("Summary unavailable, serving fallback")
		return SummaryResult{
			Summary:        FallbackSummary,
			Degraded:       true,
			UpstreamStatus: UpstreamStatus(err),
		}
	}

	s.markCompleted(ctx, log, sessionID, nil)
	log.Info("Summary retrieved from AI service")
	return SummaryResult{Summary: summary}
}

// markCompleted records progress on a known session. Transcript and summary
// requests do not require the session to exist.
func (s *service) markCompleted(ctx context.Context, log logrus.FieldLogger, sessionID string, mutate func(*Session)) {
	_, err := s.store.Update(ctx, sessionID, func(sess *Session) error {
		sess.Status = StatusCompleted
		if mutate != nil {
			mutate(sess)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.WithError(err).Warn("Failed to update session status")
	}
}

// UpstreamStatus names the kind of upstream failure for degraded responses.
func UpstreamStatus(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, aiclient.ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "unavailable"
	}
}
