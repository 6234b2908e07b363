package session

type SessionContainer struct {
	Store   Store
	Service Service
	Handler *Handler
}

func NewSessionContainer(store Store, source ContentSource, defaultLanguage string, devMode bool) *SessionContainer {
	service := NewService(store, source)
	handler := NewHandler(service, defaultLanguage, devMode)

	return &SessionContainer{
		Store:   store,
		Service: service,
		Handler: handler,
	}
}
