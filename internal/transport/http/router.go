package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quiz-player/internal/app"
)

type healthResponse struct {
	Status      string `json:"status"`
	ActivePlays int    `json:"activePlays"`
}

// NewRouter mounts the quiz endpoints. /ws stays outside the request timeout since
// a play lives as long as its connection.
func NewRouter(h *WSHandler, plays app.PlayRegistry, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", ActivePlays: plays.Count()})
	})

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(30 * time.Second))
		api.Get("/api/quiz", h.ServeQuiz)
	})

	r.Get("/ws", h.ServeWS)
	return r
}
