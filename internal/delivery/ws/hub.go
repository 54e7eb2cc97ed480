package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
	"github.com/mmuslimabdulj/spyroom/internal/logger"
)

// IntentHandler receives everything clients send and learns when they go away
type IntentHandler interface {
	Handle(transportID string, raw []byte)
	Disconnect(transportID string)
}

// HubOptions tunes per-connection limits. Zero values fall back to defaults.
type HubOptions struct {
	IntentRate     rate.Limit
	IntentBurst    int
	MaxMessageSize int64
	KickGrace      time.Duration
	Logger         *slog.Logger
}

// Hub maintains the set of active clients and the broadcast groups they
// belong to. Every client is in the lobby group; room groups are managed
// by the session coordinator through the Broadcaster methods.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	handler IntentHandler
	opts    HubOptions
	log     *slog.Logger
}

// NewHub creates a new Hub
func NewHub(opts HubOptions) *Hub {
	if opts.IntentRate <= 0 {
		opts.IntentRate = domain.DefaultRateLimitIntent
	}
	if opts.IntentBurst <= 0 {
		opts.IntentBurst = int(opts.IntentRate) * 2
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = domain.MaxMessageSize
	}
	if opts.KickGrace <= 0 {
		opts.KickGrace = domain.KickGrace
	}
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	return &Hub{
		clients:    make(map[string]*Client),
		groups:     make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		opts:       opts,
		log:        log.With("component", "hub"),
	}
}

// SetHandler wires the component that consumes intents. Must be called
// before Run.
func (h *Hub) SetHandler(handler IntentHandler) {
	h.handler = handler
}

// Run starts the hub's main event loop
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.joinLocked(client, domain.LobbyGroup)
			count := len(h.clients)
			h.mu.Unlock()

			h.log.Debug("client connected", "transport", client.ID, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			// Check if client exists - prevent double unregister
			if _, ok := h.clients[client.ID]; !ok {
				h.mu.Unlock()
				continue
			}
			delete(h.clients, client.ID)
			for id, members := range h.groups {
				delete(members, client.ID)
				if len(members) == 0 {
					delete(h.groups, id)
				}
			}
			close(client.send)
			h.mu.Unlock()

			// Outside the lock: the handler may call back into the hub
			if h.handler != nil {
				h.handler.Disconnect(client.ID)
			}
			h.log.Debug("client disconnected", "transport", client.ID)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// closeAll drops every connection on shutdown
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		if c.conn != nil {
			c.conn.Close()
		}
		delete(h.clients, id)
	}
	h.groups = make(map[string]map[string]*Client)
}

func (h *Hub) joinLocked(c *Client, groupID string) {
	members, ok := h.groups[groupID]
	if !ok {
		members = make(map[string]*Client)
		h.groups[groupID] = members
	}
	members[c.ID] = c
}
