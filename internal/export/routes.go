package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/pdf", h.ExportPDF)
	r.Get("/pdf/{sessionId}", h.ExportSessionPDF)
	return r
}
