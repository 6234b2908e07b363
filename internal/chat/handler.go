package chat

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
	service Service
	devMode bool
}

func NewHandler(s Service, devMode bool) *Handler {
	return &Handler{service: s, devMode: devMode}
}

// Ask godoc
// @Summary Answer a question about the session video
// @Accept json
// @Produce json
// @Router /api/chat/ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid chat request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Question = strings.TrimSpace(req.Question)
	if req.SessionID == "" || req.Question == "" {
		config.Error(w, http.StatusBadRequest, "sessionId and question are required")
		return
	}

	answer, err := h.service.Ask(r.Context(), req.SessionID, req.Question)
	switch {
	case err == nil:
		config.JSON(w, http.StatusOK, AskResponse{Answer: answer})
	case errors.Is(err, session.ErrSessionNotFound):
		log.WithField("session_id", req.SessionID).Warn("Chat for unknown session")
		config.Error(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, aiclient.ErrUpstreamTimeout):
		log.WithError(err).Error("LLM timed out")
		config.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "Request timed out"})
	default:
		log.WithError(err).Error("Failed to answer question")
		config.InternalError(w, "Something went wrong", err, h.devMode)
	}
}
