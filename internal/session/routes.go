package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/create", h.CreateSession)
	r.Post("/start", h.StartSession)
	r.Get("/transcript", h.GetTranscript)
	r.Get("/summary", h.GetSummary)
	return r
}
