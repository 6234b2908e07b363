package quiz

import "time"

type QuizContainer struct {
	Repository AttemptRepository
	Service    QuizService
	Handler    *Handler
}

// NewQuizContainer keeps attempts no longer than attemptTTL, which should
// match the session TTL.
func NewQuizContainer(sessions SessionLookup, source QuestionSource, defaultLanguage string, attemptTTL time.Duration, devMode bool) *QuizContainer {
	repo := NewRepository(attemptTTL)
	service := NewService(repo, sessions, source)
	handler := NewHandler(service, defaultLanguage, devMode)

	return &QuizContainer{
		Repository: repo,
		Service:    service,
		Handler:    handler,
	}
}
