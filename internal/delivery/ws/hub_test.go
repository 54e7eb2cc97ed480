package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// recordingHandler stands in for the coordinator
type recordingHandler struct {
	mu      sync.Mutex
	intents map[string][]string
	gone    []string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{intents: make(map[string][]string)}
}

func (r *recordingHandler) Handle(transportID string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[transportID] = append(r.intents[transportID], string(raw))
}

func (r *recordingHandler) Disconnect(transportID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gone = append(r.gone, transportID)
}

func (r *recordingHandler) disconnected() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.gone...)
}

// newMockClient creates a client without an actual websocket connection suitable for testing
func newMockClient(hub *Hub) *Client {
	c := NewClient(hub, nil)
	c.ID = uuid.New().String()
	return c
}

func startHub(t *testing.T, opts HubOptions) (*Hub, *recordingHandler) {
	t.Helper()
	hub := NewHub(opts)
	handler := newRecordingHandler()
	hub.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, handler
}

// readMessage pulls the next envelope from a mock client's queue
func readMessage(t *testing.T, c *Client) domain.Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("invalid envelope %s: %v", data, err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("Expected a message")
		return domain.Message{}
	}
}

func expectNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Errorf("Expected no message, got %s", data)
	default:
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(HubOptions{})
	if hub.clients == nil || hub.groups == nil {
		t.Error("maps not initialized")
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("channels not initialized")
	}
	if hub.opts.IntentRate != domain.DefaultRateLimitIntent {
		t.Errorf("Expected default intent rate, got %v", hub.opts.IntentRate)
	}
	if hub.opts.MaxMessageSize != domain.MaxMessageSize {
		t.Errorf("Expected default read limit, got %d", hub.opts.MaxMessageSize)
	}
}

func TestHub_RegisterJoinsLobby(t *testing.T) {
	hub, _ := startHub(t, HubOptions{})
	client := newMockClient(hub)

	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	if !hub.InGroup(client.ID, domain.LobbyGroup) {
		t.Error("new clients should be in the lobby group")
	}
}

func TestHub_UnregisterNotifiesHandler(t *testing.T) {
	hub, handler := startHub(t, HubOptions{})
	client := newMockClient(hub)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	hub.AddToGroup(client.ID, "ABCD")

	hub.Unregister(client)
	waitFor(t, func() bool { return len(handler.disconnected()) == 1 })

	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}
	if hub.GroupSize("ABCD") != 0 || hub.GroupSize(domain.LobbyGroup) != 0 {
		t.Error("unregistered client should leave every group")
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed")
	}

	// Double unregister is a no-op
	hub.Unregister(client)
	time.Sleep(20 * time.Millisecond)
	if got := handler.disconnected(); len(got) != 1 {
		t.Errorf("Expected a single disconnect, got %v", got)
	}
}

func TestHub_SendToGroup(t *testing.T) {
	hub, _ := startHub(t, HubOptions{})
	a, b, outsider := newMockClient(hub), newMockClient(hub), newMockClient(hub)
	for _, c := range []*Client{a, b, outsider} {
		hub.Register(c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	hub.AddToGroup(a.ID, "ABCD")
	hub.AddToGroup(b.ID, "ABCD")
	hub.SendToGroup("ABCD", domain.MessageTypeGameStarted, domain.GameStartedPayload{RoomCode: "ABCD", PlayerCount: 2})

	for _, c := range []*Client{a, b} {
		msg := readMessage(t, c)
		if msg.Type != domain.MessageTypeGameStarted {
			t.Errorf("Expected game_started, got %s", msg.Type)
		}
		var p domain.GameStartedPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.PlayerCount != 2 {
			t.Errorf("unexpected payload %s", msg.Payload)
		}
		if msg.ID == "" || msg.CreatedAt.IsZero() {
			t.Error("envelope should carry id and created_at")
		}
	}
	expectNoMessage(t, outsider)
}

func TestHub_SendToTransport(t *testing.T) {
	hub, _ := startHub(t, HubOptions{})
	a, b := newMockClient(hub), newMockClient(hub)
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.SendToTransport(a.ID, domain.MessageTypeRoleAssigned, domain.RoleAssignedPayload{RoomCode: "ABCD", Role: domain.RoleSpy})
	hub.SendToTransport("unknown", domain.MessageTypeRoleAssigned, nil)

	if msg := readMessage(t, a); msg.Type != domain.MessageTypeRoleAssigned {
		t.Errorf("Expected role_assigned, got %s", msg.Type)
	}
	expectNoMessage(t, b)
}

func TestHub_GroupMembership(t *testing.T) {
	hub, _ := startHub(t, HubOptions{})
	a := newMockClient(hub)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.AddToGroup("ghost", "ABCD")
	if hub.GroupSize("ABCD") != 0 {
		t.Error("unknown transports cannot join groups")
	}

	hub.AddToGroup(a.ID, "ABCD")
	hub.RemoveFromGroup(a.ID, "ABCD")
	if hub.InGroup(a.ID, "ABCD") {
		t.Error("client should have left the group")
	}

	hub.AddToGroup(a.ID, "ABCD")
	hub.EvictAllFromGroup("ABCD")
	if hub.GroupSize("ABCD") != 0 {
		t.Error("evict should empty the group")
	}
	if !hub.InGroup(a.ID, domain.LobbyGroup) {
		t.Error("eviction keeps the client in the lobby")
	}

	hub.EvictAllFromGroup(domain.LobbyGroup)
	if !hub.InGroup(a.ID, domain.LobbyGroup) {
		t.Error("the lobby group cannot be evicted")
	}
}

func TestHub_TerminateTransport(t *testing.T) {
	hub, handler := startHub(t, HubOptions{KickGrace: time.Millisecond})
	a := newMockClient(hub)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.TerminateTransport(a.ID)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if got := handler.disconnected(); len(got) != 1 || got[0] != a.ID {
		t.Errorf("Expected disconnect for %s, got %v", a.ID, got)
	}
}

func TestHub_ShutdownReleasesCallers(t *testing.T) {
	hub := NewHub(HubOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		hub.Register(newMockClient(hub))
		hub.Unregister(newMockClient(hub))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after shutdown")
	}
}
