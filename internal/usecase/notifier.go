package usecase

import (
	"slices"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// Notifier remembers the last player list sent per room and the last room
// list sent to the lobby, and only broadcasts when the content changed.
// Snapshots are compared by value, never by serialized form.
type Notifier struct {
	out       Broadcaster
	players   map[string]playersSnapshot
	directory []domain.RoomSummary
	sentDir   bool
}

type playersSnapshot struct {
	hostID  string
	players []domain.PlayerView
}

// NewNotifier creates a notifier that emits through out
func NewNotifier(out Broadcaster) *Notifier {
	return &Notifier{
		out:     out,
		players: make(map[string]playersSnapshot),
	}
}

// PlayersChanged broadcasts the room's player list if it differs from the
// last one sent. Reports whether a broadcast happened.
func (n *Notifier) PlayersChanged(room *domain.Room) bool {
	snap := playersSnapshot{hostID: room.HostID, players: room.PlayerViews()}
	if prev, ok := n.players[room.Code]; ok &&
		prev.hostID == snap.hostID && slices.Equal(prev.players, snap.players) {
		return false
	}
	n.players[room.Code] = snap
	n.out.SendToGroup(room.Code, domain.MessageTypePlayersUpdate, playersPayload(room.Code, snap))
	return true
}

// SendPlayersTo delivers the current list to one transport regardless of
// what was last broadcast. Rejoining clients need it even when nothing changed.
func (n *Notifier) SendPlayersTo(transportID string, room *domain.Room) {
	snap := playersSnapshot{hostID: room.HostID, players: room.PlayerViews()}
	n.out.SendToTransport(transportID, domain.MessageTypePlayersUpdate, playersPayload(room.Code, snap))
}

// ResendPlayers broadcasts the player list unconditionally and records it
func (n *Notifier) ResendPlayers(room *domain.Room) {
	snap := playersSnapshot{hostID: room.HostID, players: room.PlayerViews()}
	n.players[room.Code] = snap
	n.out.SendToGroup(room.Code, domain.MessageTypePlayersUpdate, playersPayload(room.Code, snap))
}

// DirectoryChanged broadcasts the room list to the lobby group on change
func (n *Notifier) DirectoryChanged(summaries []domain.RoomSummary) bool {
	if n.sentDir && slices.Equal(n.directory, summaries) {
		return false
	}
	n.directory = summaries
	n.sentDir = true
	n.out.SendToGroup(domain.LobbyGroup, domain.MessageTypeRoomListUpdate, domain.RoomListPayload{Rooms: summaries})
	return true
}

// Forget drops the stored snapshot of a removed room
func (n *Notifier) Forget(code string) {
	delete(n.players, code)
}

func playersPayload(code string, snap playersSnapshot) domain.PlayersUpdatePayload {
	return domain.PlayersUpdatePayload{
		RoomCode: code,
		HostID:   snap.hostID,
		Players:  snap.players,
	}
}
