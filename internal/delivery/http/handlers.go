package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mmuslimabdulj/spyroom/internal/delivery/ws"
	"github.com/mmuslimabdulj/spyroom/internal/domain"
	"github.com/mmuslimabdulj/spyroom/internal/logger"
	"github.com/mmuslimabdulj/spyroom/view/pages"
)

// RoomLister reads the current room list
type RoomLister interface {
	ListRooms(ctx context.Context) ([]domain.RoomSummary, error)
}

type Handler struct {
	rooms    RoomLister
	hub      *ws.Hub
	origins  []string
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewHandler(rooms RoomLister, hub *ws.Hub, allowedOrigins []string, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.L()
	}
	h := &Handler{
		rooms:   rooms,
		hub:     hub,
		origins: allowedOrigins,
		log:     log.With("component", "http"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.isOriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

// isOriginAllowed checks if the origin is in the allowed list
func (h *Handler) isOriginAllowed(origin string) bool {
	// Empty origin is allowed (same-origin requests)
	if origin == "" {
		return true
	}

	for _, allowed := range h.origins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listRooms bounds the wait on the coordinator
func (h *Handler) listRooms(r *http.Request) ([]domain.RoomSummary, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	return h.rooms.ListRooms(ctx)
}

// HandleLobby serves the lobby page with a snapshot of the room list
func (h *Handler) HandleLobby(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")

	rooms, err := h.listRooms(r)
	if err != nil {
		h.log.Error("list rooms for lobby", "err", err)
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Lobby(rooms).Render(r.Context(), w); err != nil {
		h.log.Error("render lobby", "err", err)
	}
}

// HandleRooms returns the same projection get_rooms sends over the socket
func (h *Handler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.listRooms(r)
	if err != nil {
		h.log.Error("list rooms", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, domain.RoomListPayload{Rooms: rooms})
}

// HandleWebSocket upgrades HTTP to WebSocket. Room membership is decided
// later by intents, so every connection starts out in the lobby only.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.log.Debug("websocket upgrade failed", "err", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register(client)

	// Start read/write pumps in goroutines
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
