package domain

import "fmt"

// RoomState is the round lifecycle of a room
type RoomState string

const (
	StateLobby  RoomState = "lobby"
	StateActive RoomState = "active"
)

// Room is one game session. It is owned by the session coordinator's
// goroutine and is never touched concurrently.
type Room struct {
	Code     string
	HostID   string
	Settings Settings
	Players  []*Player
	State    RoomState

	// Revealing is set between end_game and the delayed reset
	Revealing bool
}

// NewRoom creates a lobby room whose only player is the online host
func NewRoom(code, hostID, hostName, transportID string, settings Settings) *Room {
	return &Room{
		Code:     code,
		HostID:   hostID,
		Settings: settings,
		Players:  []*Player{NewPlayer(hostID, transportID, hostName, SeatHost)},
		State:    StateLobby,
	}
}

// Player looks up a participant
func (r *Room) Player(participantID string) (*Player, bool) {
	for _, p := range r.Players {
		if p.ParticipantID == participantID {
			return p, true
		}
	}
	return nil, false
}

// Host returns the host player
func (r *Room) Host() *Player {
	p, _ := r.Player(r.HostID)
	return p
}

// IsHost reports whether participantID is the room's recorded host
func (r *Room) IsHost(participantID string) bool {
	return participantID != "" && participantID == r.HostID
}

// JoinResult describes the outcome of Join
type JoinResult struct {
	Player   *Player
	Rejoined bool
	// PreviousTransport is the transport that was bound before this join, if it changed
	PreviousTransport string
}

// Join seats a participant. An existing participant is rebound to the new
// transport instead of being added twice.
func (r *Room) Join(participantID, transportID, displayName string) JoinResult {
	if p, ok := r.Player(participantID); ok {
		prev := p.Bind(transportID)
		if displayName != "" {
			p.DisplayName = displayName
		}
		return JoinResult{Player: p, Rejoined: true, PreviousTransport: prev}
	}

	p := NewPlayer(participantID, transportID, displayName, SeatPlayer)
	r.Players = append(r.Players, p)
	return JoinResult{Player: p}
}

// Reconnect binds a new transport to an existing participant
func (r *Room) Reconnect(participantID, transportID string) (JoinResult, error) {
	p, ok := r.Player(participantID)
	if !ok {
		return JoinResult{}, fmt.Errorf("participant %s in room %s: %w", participantID, r.Code, ErrNotFound)
	}
	prev := p.Bind(transportID)
	return JoinResult{Player: p, Rejoined: true, PreviousTransport: prev}, nil
}

// Remove takes a player out of the room entirely
func (r *Room) Remove(participantID string) (*Player, bool) {
	for i, p := range r.Players {
		if p.ParticipantID == participantID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

// MarkOffline unbinds whichever player currently holds transportID.
// A transport that was already superseded matches nobody, so a late
// disconnect can never knock a reconnected player offline.
func (r *Room) MarkOffline(transportID string) (*Player, bool) {
	if transportID == "" {
		return nil, false
	}
	for _, p := range r.Players {
		if p.TransportID == transportID {
			p.Unbind()
			return p, true
		}
	}
	return nil, false
}

// OnlineEligible lists online non-host players in join order
func (r *Room) OnlineEligible() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.IsHost() && p.IsOnline() {
			out = append(out, p)
		}
	}
	return out
}

// ApplyAssignments writes a round's roles onto the players
func (r *Room) ApplyAssignments(assignments []Assignment) {
	for _, a := range assignments {
		if p, ok := r.Player(a.ParticipantID); ok {
			p.Role = a.Role
			p.Keyword = a.Keyword
		}
	}
}

// ResetRoles clears every assignment and returns the room to the lobby
func (r *Room) ResetRoles() {
	for _, p := range r.Players {
		p.ClearRole()
	}
	r.State = StateLobby
	r.Revealing = false
}

// Reveal lists every non-host player with what they held this round
func (r *Room) Reveal() []RevealEntry {
	out := make([]RevealEntry, 0, len(r.Players))
	for _, p := range r.Players {
		if p.IsHost() {
			continue
		}
		out = append(out, RevealEntry{
			ParticipantID: p.ParticipantID,
			DisplayName:   p.DisplayName,
			Role:          p.Role,
			Keyword:       p.Keyword,
		})
	}
	return out
}

// PlayerViews is the public player list
func (r *Room) PlayerViews() []PlayerView {
	out := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.View())
	}
	return out
}

// OnlineCount counts online players, host included
func (r *Room) OnlineCount() int {
	n := 0
	for _, p := range r.Players {
		if p.IsOnline() {
			n++
		}
	}
	return n
}

// RoomSummary is the read-only projection used by get_rooms
type RoomSummary struct {
	Code          string    `json:"code"`
	HostName      string    `json:"hostName"`
	OnlinePlayers int       `json:"onlinePlayerCount"`
	State         RoomState `json:"state"`
}

func (r *Room) Summary() RoomSummary {
	var hostName string
	if h := r.Host(); h != nil {
		hostName = h.DisplayName
	}
	return RoomSummary{
		Code:          r.Code,
		HostName:      hostName,
		OnlinePlayers: r.OnlineCount(),
		State:         r.State,
	}
}
