package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

type Handler struct {
	service         QuizService
	defaultLanguage string
	devMode         bool
}

func NewHandler(s QuizService, defaultLanguage string, devMode bool) *Handler {
	return &Handler{service: s, defaultLanguage: defaultLanguage, devMode: devMode}
}

// GenerateQuiz godoc
// @Summary Generate a multiple-choice quiz; never fails because of the AI service
// @Accept json
// @Produce json
// @Router /api/quiz/generate [post]
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid quiz request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.VideoURL == "" && req.SessionID == "" {
		config.Error(w, http.StatusBadRequest, "Video URL is required")
		return
	}

	lang, err := aiclient.NormalizeLanguage(req.Language, h.defaultLanguage)
	if err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Language = lang

	result, err := h.service.Generate(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, ErrMissingVideo):
		config.Error(w, http.StatusBadRequest, "Video URL is required")
		return
	default:
		log.WithError(err).Error("Failed to generate quiz")
		config.InternalError(w, "Failed to generate quiz", err, h.devMode)
		return
	}

	config.JSON(w, http.StatusOK, GenerateResponse{
		Success:        true,
		VideoURL:       result.VideoURL,
		Questions:      result.Questions,
		Message:        result.Message,
		Degraded:       result.Degraded,
		UpstreamStatus: result.UpstreamStatus,
	})
}

// EvaluateQuiz godoc
// @Summary Evaluate submitted quiz answers
// @Accept json
// @Produce json
// @Router /api/quiz/evaluate [post]
func (h *Handler) EvaluateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid evaluate request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	raw := strings.TrimSpace(string(req.Answer))
	if req.SessionID == "" || raw == "" || raw == "null" {
		config.Error(w, http.StatusBadRequest, "sessionId and answer are required")
		return
	}

	answers, submitted, err := ParseAnswers(req.Answer)
	if err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Evaluate(r.Context(), EvaluateInput{
		SessionID: req.SessionID,
		Answers:   answers,
		Submitted: submitted,
		Questions: req.Questions,
	})
	if err != nil {
		log.WithError(err).Error("Failed to evaluate answers")
		config.InternalError(w, "Failed to evaluate answers", err, h.devMode)
		return
	}

	config.JSON(w, http.StatusOK, newEvaluateResponse(result))
}

func newEvaluateResponse(result EvaluateResult) EvaluateResponse {
	resp := EvaluateResponse{Score: result.Score, Feedback: result.Feedback}
	if result.Graded == nil {
		return resp
	}

	graded := *result.Graded
	resp.Correct = &graded.Correct
	resp.Total = &graded.Total
	resp.Percentage = &graded.Percentage
	resp.Results = make([]QuestionResult, 0, len(result.Questions))
	for i, q := range result.Questions {
		item := QuestionResult{Index: i, Correct: q.Correct}
		if selected, ok := result.Answers[i]; ok {
			item.Selected = &selected
			item.IsRight = selected == q.Correct
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}
