package usecase

import (
	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// sentMessage is one recorded Broadcaster delivery
type sentMessage struct {
	target  string
	group   bool
	msgType domain.MessageType
	payload any
}

// fakeBroadcaster records every call instead of touching sockets
type fakeBroadcaster struct {
	sent       []sentMessage
	groups     map[string]map[string]bool
	terminated []string
	evicted    []string
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{groups: make(map[string]map[string]bool)}
}

func (f *fakeBroadcaster) SendToGroup(groupID string, msgType domain.MessageType, payload any) {
	f.sent = append(f.sent, sentMessage{target: groupID, group: true, msgType: msgType, payload: payload})
}

func (f *fakeBroadcaster) SendToTransport(transportID string, msgType domain.MessageType, payload any) {
	f.sent = append(f.sent, sentMessage{target: transportID, msgType: msgType, payload: payload})
}

func (f *fakeBroadcaster) AddToGroup(transportID, groupID string) {
	if f.groups[groupID] == nil {
		f.groups[groupID] = make(map[string]bool)
	}
	f.groups[groupID][transportID] = true
}

func (f *fakeBroadcaster) RemoveFromGroup(transportID, groupID string) {
	delete(f.groups[groupID], transportID)
}

func (f *fakeBroadcaster) EvictAllFromGroup(groupID string) {
	f.evicted = append(f.evicted, groupID)
	delete(f.groups, groupID)
}

func (f *fakeBroadcaster) TerminateTransport(transportID string) {
	f.terminated = append(f.terminated, transportID)
}

func (f *fakeBroadcaster) inGroup(transportID, groupID string) bool {
	return f.groups[groupID][transportID]
}

// toTransport returns payloads privately sent to transportID with the given type
func (f *fakeBroadcaster) toTransport(transportID string, msgType domain.MessageType) []any {
	var out []any
	for _, m := range f.sent {
		if !m.group && m.target == transportID && m.msgType == msgType {
			out = append(out, m.payload)
		}
	}
	return out
}

// toGroup returns payloads broadcast to groupID with the given type
func (f *fakeBroadcaster) toGroup(groupID string, msgType domain.MessageType) []any {
	var out []any
	for _, m := range f.sent {
		if m.group && m.target == groupID && m.msgType == msgType {
			out = append(out, m.payload)
		}
	}
	return out
}

func (f *fakeBroadcaster) reset() {
	f.sent = nil
}
