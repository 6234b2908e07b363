package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/quiz"
	util "github.com/saulo-duarte/yt-study-api/internal/utils"
)

type AttemptSource interface {
	Attempt(ctx context.Context, sessionID string) (quiz.Attempt, error)
}

type Handler struct {
	renderer Renderer
	attempts AttemptSource
	clock    *util.Clock
	devMode  bool
}

func NewHandler(renderer Renderer, attempts AttemptSource, clock *util.Clock, devMode bool) *Handler {
	return &Handler{renderer: renderer, attempts: attempts, clock: clock, devMode: devMode}
}

// ExportPDF godoc
// @Summary Download a quiz report built from JSON query parameters
// @Param questions query string false "JSON array of questions"
// @Param answers query string false "JSON answers, array or object"
// @Param score query string false "JSON score summary"
// @Produce application/pdf
// @Router /api/export/pdf [get]
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	payload, err := PayloadFromQuery(q.Get("questions"), q.Get("answers"), q.Get("score"))
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Unparsable quiz data in export request")
	}
	h.write(w, r, payload)
}

// ExportSessionPDF godoc
// @Summary Download the report of the last quiz taken in a session
// @Produce application/pdf
// @Router /api/export/pdf/{sessionId} [get]
func (h *Handler) ExportSessionPDF(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	sessionID := strings.TrimSpace(chi.URLParam(r, "sessionId"))
	if sessionID == "" {
		config.Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	attempt, err := h.attempts.Attempt(r.Context(), sessionID)
	switch {
	case err == nil:
	case errors.Is(err, quiz.ErrAttemptNotFound):
		log.WithField("session_id", sessionID).Warn("Export requested before any quiz")
		config.Error(w, http.StatusNotFound, "No quiz found for this session")
		return
	default:
		log.WithError(err).Error("Failed to load quiz attempt")
		config.InternalError(w, "Failed to generate PDF", err, h.devMode)
		return
	}

	h.write(w, r, &Payload{Questions: attempt.Questions, Answers: attempt.Answers, Score: attempt.Score})
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, payload *Payload) {
	log := config.WithContext(r.Context())

	body, err := h.renderer.Render(BuildReport(payload, h.clock.Stamp()))
	if err != nil {
		log.WithError(err).Error("Failed to render PDF")
		config.InternalError(w, "Failed to generate PDF", err, h.devMode)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", ContentDisposition)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.WithError(err).Warn("Failed to write PDF response")
		return
	}
	log.WithFields(logrus.Fields{"bytes": len(body)}).Info("Quiz report exported")
}

// PayloadFromQuery decodes the JSON query parameters sent by the client. A
// missing questions parameter yields an empty payload; any decode failure
// yields a nil payload together with the error.
func PayloadFromQuery(questions, answers, score string) (*Payload, error) {
	if strings.TrimSpace(questions) == "" {
		return &Payload{}, nil
	}

	p := &Payload{Answers: quiz.AnswerSet{}}
	if err := json.Unmarshal([]byte(questions), &p.Questions); err != nil {
		return nil, err
	}
	if strings.TrimSpace(answers) != "" {
		set, _, err := quiz.ParseAnswers([]byte(answers))
		if err != nil {
			return nil, err
		}
		p.Answers = set
	}
	if strings.TrimSpace(score) != "" {
		if err := json.Unmarshal([]byte(score), &p.Score); err != nil {
			return nil, err
		}
	}
	return p, nil
}
