package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/chat"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/export"
	"github.com/saulo-duarte/yt-study-api/internal/quiz"
	"github.com/saulo-duarte/yt-study-api/internal/router"
	"github.com/saulo-duarte/yt-study-api/internal/session"
	util "github.com/saulo-duarte/yt-study-api/internal/utils"
)

type Container struct {
	Settings         config.Settings
	AIClient         aiclient.Client
	SessionContainer *session.SessionContainer
	ChatContainer    *chat.ChatContainer
	QuizContainer    *quiz.QuizContainer
	ExportContainer  *export.ExportContainer
}

// New wires every feature from settings. A missing LLM key is not fatal:
// chat requests fail with a 500 while the rest of the API keeps working.
func New(ctx context.Context, settings config.Settings) (*Container, error) {
	log := config.Logger.WithField("component", "container")

	provider, err := aiclient.NewProvider(ctx, settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	client := aiclient.New(aiclient.Config{
		BaseURL: settings.AIServicesURL,
		Timeout: settings.UpstreamTimeout(),
	}, provider)

	clock, err := util.NewClock(settings.ReportTimezone)
	if err != nil {
		return nil, err
	}

	devMode := settings.DevMode()
	store := session.NewMemoryStore(settings.SessionTTL())

	sessionContainer := session.NewSessionContainer(store, client, settings.DefaultLanguage, devMode)
	chatContainer := chat.NewChatContainer(store, client, settings.DefaultLanguage, devMode)
	quizContainer := quiz.NewQuizContainer(store, client, settings.DefaultLanguage, settings.SessionTTL(), devMode)
	exportContainer := export.NewExportContainer(quizContainer.Service, clock, devMode)

	log.WithField("ai_services_url", settings.AIServicesURL).
		WithField("llm_provider", settings.LLM.Provider).
		Info("Containers initialized")

	return &Container{
		Settings:         settings,
		AIClient:         client,
		SessionContainer: sessionContainer,
		ChatContainer:    chatContainer,
		QuizContainer:    quizContainer,
		ExportContainer:  exportContainer,
	}, nil
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		SessionHandler: c.SessionContainer.Handler,
		ChatHandler:    c.ChatContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		ExportHandler:  c.ExportContainer.Handler,
		DevMode:        c.Settings.DevMode(),
	})
}
