package chat

import "github.com/saulo-duarte/yt-study-api/internal/session"

type ChatContainer struct {
	Handler *Handler
}

func NewChatContainer(store session.Store, client Answerer, language string, devMode bool) *ChatContainer {
	service := NewService(store, client, language)
	handler := NewHandler(service, devMode)

	return &ChatContainer{
		Handler: handler,
	}
}
