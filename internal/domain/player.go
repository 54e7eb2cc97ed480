package domain

// Seat distinguishes the room's host from ordinary players
type Seat string

const (
	SeatHost   Seat = "host"
	SeatPlayer Seat = "player"
)

// Presence tracks whether a player currently has a live transport
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
)

// Player is a participant seated in a room.
// ParticipantID is stable across reconnects; TransportID is the live
// connection and is empty while the player is offline.
type Player struct {
	ParticipantID string
	TransportID   string
	DisplayName   string
	Seat          Seat
	Presence      Presence
	Role          Role
	Keyword       string

	// Codename is set while DisplayName is a generated name the player holds
	Codename string
}

// NewPlayer creates an online player with no role
func NewPlayer(participantID, transportID, displayName string, seat Seat) *Player {
	return &Player{
		ParticipantID: participantID,
		TransportID:   transportID,
		DisplayName:   displayName,
		Seat:          seat,
		Presence:      PresenceOnline,
		Role:          RoleNone,
	}
}

func (p *Player) IsHost() bool { return p.Seat == SeatHost }

func (p *Player) IsOnline() bool { return p.Presence == PresenceOnline }

// Bind attaches a live transport and returns the one it replaced, if any
func (p *Player) Bind(transportID string) string {
	prev := p.TransportID
	p.TransportID = transportID
	p.Presence = PresenceOnline
	if prev == transportID {
		return ""
	}
	return prev
}

// Unbind marks the player offline
func (p *Player) Unbind() {
	p.TransportID = ""
	p.Presence = PresenceOffline
}

// ClearRole drops the round assignment
func (p *Player) ClearRole() {
	p.Role = RoleNone
	p.Keyword = ""
}

// HasRole reports whether the player holds an assignment this round
func (p *Player) HasRole() bool { return p.Role != RoleNone }

// View is the public projection of a player. Role and keyword never leave
// the server through it.
func (p *Player) View() PlayerView {
	return PlayerView{
		ParticipantID: p.ParticipantID,
		DisplayName:   p.DisplayName,
		Seat:          p.Seat,
		Presence:      p.Presence,
	}
}

// PlayerView is what players_update carries. It must stay comparable so
// snapshots can be diffed by value.
type PlayerView struct {
	ParticipantID string   `json:"participantId"`
	DisplayName   string   `json:"displayName"`
	Seat          Seat     `json:"seat"`
	Presence      Presence `json:"presence"`
}
