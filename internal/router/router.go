package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/yt-study-api/internal/chat"
	"github.com/saulo-duarte/yt-study-api/internal/config"
	"github.com/saulo-duarte/yt-study-api/internal/export"
	"github.com/saulo-duarte/yt-study-api/internal/middlewares"
	"github.com/saulo-duarte/yt-study-api/internal/quiz"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

type RouterConfig struct {
	SessionHandler *session.Handler
	ChatHandler    *chat.Handler
	QuizHandler    *quiz.Handler
	ExportHandler  *export.Handler
	DevMode        bool
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Recoverer(cfg.DevMode))
	r.Use(middlewares.CorsMiddleware)

	r.NotFound(middlewares.NotFound)
	r.MethodNotAllowed(middlewares.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Backend is running"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Mount("/session", session.Routes(cfg.SessionHandler))
		r.Post("/video/store", cfg.SessionHandler.StoreVideo)
		r.Mount("/chat", chat.Routes(cfg.ChatHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/export", export.Routes(cfg.ExportHandler))
	})
	return r
}
