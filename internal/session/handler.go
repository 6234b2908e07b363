package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/config"
)

type Handler struct {
	service         Service
	defaultLanguage string
	devMode         bool
}

func NewHandler(s Service, defaultLanguage string, devMode bool) *Handler {
	return &Handler{service: s, defaultLanguage: defaultLanguage, devMode: devMode}
}

// CreateSession godoc
// @Summary Create a study session for a YouTube video
// @Accept json
// @Produce json
// @Router /api/session/create [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, StatusReady, "youtubeUrl is required", "Session created successfully")
}

// StartSession godoc
// @Summary Start processing a YouTube video
// @Router /api/session/start [post]
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, StatusProcessing, "videoUrl is required", "Session started successfully")
}

// StoreVideo keeps the older client flow that registers a video for chat.
func (h *Handler) StoreVideo(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, StatusReady, "videoUrl is required", "Video URL stored successfully for chat")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, status Status, missingMsg, okMsg string) {
	log := config.WithContext(r.Context())

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid session request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	url := strings.TrimSpace(req.URL())
	if url == "" {
		config.Error(w, http.StatusBadRequest, missingMsg)
		return
	}

	sess, err := h.service.Create(r.Context(), url, status)
	if err != nil {
		log.WithError(err).Error("Failed to create session")
		config.InternalError(w, "Failed to start session", err, h.devMode)
		return
	}

	config.JSON(w, http.StatusOK, SessionResponse{
		Success:   true,
		SessionID: sess.ID,
		VideoID:   sess.VideoID,
		VideoURL:  sess.VideoURL,
		Status:    sess.Status,
		Message:   okMsg,
	})
}

// GetTranscript godoc
// @Summary Transcript of the session video, or a fallback text when the AI service is down
// @Param sessionId query string true "session id"
// @Param videoId query string true "video id"
// @Router /api/session/transcript [get]
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID, videoID, lang, ok := h.contentQuery(w, r)
	if !ok {
		return
	}

	result := h.service.Transcript(r.Context(), sessionID, videoID, lang)
	config.JSON(w, http.StatusOK, TranscriptResponse{
		Success:        true,
		SessionID:      sessionID,
		VideoID:        videoID,
		Transcript:     result.Transcript.Value(),
		Status:         StatusCompleted,
		Degraded:       result.Degraded,
		UpstreamStatus: result.UpstreamStatus,
	})
}

// GetSummary godoc
// @Summary Summary of the session video, or a fallback text when the AI service is down
// @Router /api/session/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID, videoID, lang, ok := h.contentQuery(w, r)
	if !ok {
		return
	}

	result := h.service.Summary(r.Context(), sessionID, videoID, lang)
	config.JSON(w, http.StatusOK, SummaryResponse{
		Success:        true,
		SessionID:      sessionID,
		VideoID:        videoID,
		Summary:        result.Summary,
		Status:         StatusCompleted,
		Degraded:       result.Degraded,
		UpstreamStatus: result.UpstreamStatus,
	})
}

func (h *Handler) contentQuery(w http.ResponseWriter, r *http.Request) (string, string, string, bool) {
	log := config.WithContext(r.Context())
	q := r.URL.Query()
	sessionID := strings.TrimSpace(q.Get("sessionId"))
	videoID := strings.TrimSpace(q.Get("videoId"))

	if sessionID == "" || videoID == "" {
		log.WithField("query", r.URL.RawQuery).Warn("Missing required parameters")
		config.Error(w, http.StatusBadRequest, "Both sessionId and videoId are required as query parameters")
		return "", "", "", false
	}

	lang, err := aiclient.NormalizeLanguage(q.Get("language"), h.defaultLanguage)
	if err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return "", "", "", false
	}
	return sessionID, videoID, lang, true
}
