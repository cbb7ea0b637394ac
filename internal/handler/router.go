package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gameHandler "github.com/calvinyu/guessme/backend/internal/handler/game"
	middlewarePkg "github.com/calvinyu/guessme/backend/internal/middleware"
	gameService "github.com/calvinyu/guessme/backend/internal/service/game"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(gameSvc *gameService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	h := gameHandler.New(gameSvc)

	r.Route("/api", func(api chi.Router) {
		h.RegisterRoutes(api)
	})

	return r
}
