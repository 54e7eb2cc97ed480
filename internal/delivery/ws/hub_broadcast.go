package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// buildMessage wraps a payload in the notification envelope
func buildMessage(msgType domain.MessageType, payload any) ([]byte, error) {
	msg := domain.Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		CreatedAt: time.Now(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = raw
	}
	return json.Marshal(msg)
}

// SendToGroup delivers a notification to every member of a group.
// The envelope is encoded once and shared.
func (h *Hub) SendToGroup(groupID string, msgType domain.MessageType, payload any) {
	data, err := buildMessage(msgType, payload)
	if err != nil {
		h.log.Error("encode notification", "type", msgType, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.groups[groupID] {
		c.Send(data)
	}
}

// SendToTransport delivers a notification to one connection
func (h *Hub) SendToTransport(transportID string, msgType domain.MessageType, payload any) {
	data, err := buildMessage(msgType, payload)
	if err != nil {
		h.log.Error("encode notification", "type", msgType, "err", err)
		return
	}

	// Held across Send so the channel cannot be closed underneath us
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[transportID]; ok {
		c.Send(data)
	}
}

// AddToGroup subscribes a live transport to a group. Unknown transports are ignored.
func (h *Hub) AddToGroup(transportID, groupID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[transportID]; ok {
		h.joinLocked(c, groupID)
	}
}

// RemoveFromGroup unsubscribes a transport from a group
func (h *Hub) RemoveFromGroup(transportID, groupID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[groupID]; ok {
		delete(members, transportID)
		if len(members) == 0 {
			delete(h.groups, groupID)
		}
	}
}

// EvictAllFromGroup empties a group. Connections stay open and remain in the lobby.
func (h *Hub) EvictAllFromGroup(groupID string) {
	if groupID == domain.LobbyGroup {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups, groupID)
}

// TerminateTransport closes a connection after a short grace period so
// anything already queued (the kick notice) can still be written.
func (h *Hub) TerminateTransport(transportID string) {
	h.mu.RLock()
	c, ok := h.clients[transportID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	h.log.Info("terminating transport", "transport", transportID)
	time.AfterFunc(h.opts.KickGrace, c.terminate)
}
