package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-negamax/pkg/httputil"
)

// NewRouter mounts the game API, the websocket endpoint and the health check.
func NewRouter(games *GameHandler, ws http.Handler, allowedOrigins []string, logger *zap.SugaredLogger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins, logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", games.CreateGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.GameAuth(games.Tokens))
			r.Get("/", games.GetGame)
			r.Delete("/", games.DeleteGame)
			r.Post("/moves", games.SubmitMove)
			r.Post("/ai-move", games.RequestAIMove)
			r.Put("/difficulty", games.SetDifficulty)
			r.Post("/reset", games.ResetGame)
		})
	})

	if ws != nil {
		r.Get("/ws", ws.ServeHTTP)
	}
	return r
}
