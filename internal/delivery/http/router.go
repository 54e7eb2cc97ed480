package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmuslimabdulj/spyroom/internal/logger"
	"github.com/mmuslimabdulj/spyroom/internal/middleware"
)

// Limits are the per-IP limiters applied to each surface
type Limits struct {
	API       *middleware.IPRateLimiter
	WebSocket *middleware.IPRateLimiter
}

func NewRouter(h *Handler, limits Limits, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.L()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.SecurityHeaders)
		if limits.API != nil {
			pages.Use(middleware.RateLimitMiddleware(limits.API))
		}
		pages.Get("/", h.HandleLobby)
		pages.Get("/api/rooms", h.HandleRooms)
	})

	wsHandler := http.HandlerFunc(h.HandleWebSocket)
	if limits.WebSocket != nil {
		wsHandler = middleware.RateLimitFunc(limits.WebSocket, wsHandler)
	}
	r.Get("/ws", wsHandler)

	// health
	r.Get("/healthz", h.HandleHealth)

	return r
}
