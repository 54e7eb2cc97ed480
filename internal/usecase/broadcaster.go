package usecase

import "github.com/mmuslimabdulj/spyroom/internal/domain"

// Broadcaster is the realtime transport as seen by the coordinator.
// Delivery is fire-and-forget; sends to a transport that no longer exists
// are dropped silently.
type Broadcaster interface {
	SendToGroup(groupID string, msgType domain.MessageType, payload any)
	SendToTransport(transportID string, msgType domain.MessageType, payload any)
	AddToGroup(transportID, groupID string)
	RemoveFromGroup(transportID, groupID string)
	EvictAllFromGroup(groupID string)
	TerminateTransport(transportID string)
}
