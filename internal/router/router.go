package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/middleware"
)

// New wires the relay API. shell, when non-nil, serves the bundled chat UI for
// every path outside /api.
func New(chatHandler *handlers.ChatHandler, shell http.Handler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", chatHandler.Send)
			r.Get("/history", chatHandler.History)
			r.Delete("/history", chatHandler.ClearHistory)
		})
	})

	if shell != nil {
		r.Handle("/*", shell)
	}

	return r
}
