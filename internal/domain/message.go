package domain

import (
	"encoding/json"
	"time"
)

// MessageType names an intent (client to server) or a notification (server to client)
type MessageType string

// Intents
const (
	MessageTypeCreateRoom     MessageType = "create_room"
	MessageTypeJoinRoom       MessageType = "join_room"
	MessageTypeLeaveRoom      MessageType = "leave_room"
	MessageTypeReconnectRoom  MessageType = "reconnect_room"
	MessageTypeUpdateSettings MessageType = "update_settings"
	MessageTypeStartGame      MessageType = "start_game"
	MessageTypeEndGame        MessageType = "end_game"
	MessageTypeKickPlayer     MessageType = "kick_player"
	MessageTypeGetRooms       MessageType = "get_rooms"
	MessageTypeRevealRole     MessageType = "reveal_role"
)

// Notifications
const (
	MessageTypeRoomCreated     MessageType = "room_created"
	MessageTypeJoinedSuccess   MessageType = "joined_success"
	MessageTypePlayersUpdate   MessageType = "players_update"
	MessageTypeSettingsUpdated MessageType = "settings_updated"
	MessageTypeGameStarted     MessageType = "game_started"
	MessageTypeRoleAssigned    MessageType = "role_assigned"
	MessageTypeGameEnded       MessageType = "game_ended"
	MessageTypeGameReset       MessageType = "game_reset"
	MessageTypeRoomDeleted     MessageType = "room_deleted"
	MessageTypeRoomListUpdate  MessageType = "room_list_update"
	MessageTypeRoleRevealed    MessageType = "role_revealed"
	MessageTypeKicked          MessageType = "kicked"
	MessageTypeError           MessageType = "error_message"
)

// Message is the envelope written to every socket
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Intent is what clients send
type Intent struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ==== Intent payloads ====

type CreateRoomPayload struct {
	RoomCode      string `json:"roomCode"`
	HostName      string `json:"hostName"`
	ParticipantID string `json:"participantId"`
}

type JoinRoomPayload struct {
	RoomCode      string `json:"roomCode"`
	DisplayName   string `json:"displayName"`
	ParticipantID string `json:"participantId"`
}

// RoomRequestPayload covers intents that only name a room and a requester
// (leave_room, reconnect_room, start_game, end_game)
type RoomRequestPayload struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
}

type UpdateSettingsPayload struct {
	RoomCode      string        `json:"roomCode"`
	ParticipantID string        `json:"participantId"`
	Patch         SettingsPatch `json:"patch"`
}

type KickPlayerPayload struct {
	RoomCode            string `json:"roomCode"`
	HostID              string `json:"hostId"`
	TargetParticipantID string `json:"targetParticipantId"`
}

type RevealRolePayload struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
	PlayerID      string `json:"playerId"`
}

// ==== Notification payloads ====

type RoomCreatedPayload struct {
	RoomCode string   `json:"roomCode"`
	Settings Settings `json:"settings"`
}

type JoinedSuccessPayload struct {
	RoomCode      string    `json:"roomCode"`
	ParticipantID string    `json:"participantId"`
	DisplayName   string    `json:"displayName"`
	Seat          Seat      `json:"seat"`
	State         RoomState `json:"state"`
	Settings      Settings  `json:"settings"`
	Rejoined      bool      `json:"rejoined"`
}

type PlayersUpdatePayload struct {
	RoomCode string       `json:"roomCode"`
	HostID   string       `json:"hostId"`
	Players  []PlayerView `json:"players"`
}

type SettingsUpdatedPayload struct {
	RoomCode string   `json:"roomCode"`
	Settings Settings `json:"settings"`
}

type GameStartedPayload struct {
	RoomCode    string `json:"roomCode"`
	PlayerCount int    `json:"playerCount"`
}

type RoleAssignedPayload struct {
	RoomCode string `json:"roomCode"`
	Role     Role   `json:"role"`
	Keyword  string `json:"keyword"`
}

type GameEndedPayload struct {
	RoomCode string        `json:"roomCode"`
	Players  []RevealEntry `json:"players"`
	ResetIn  int64         `json:"resetInMs"`
}

type GameResetPayload struct {
	RoomCode string `json:"roomCode"`
}

type RoomDeletedPayload struct {
	RoomCode string `json:"roomCode"`
	Reason   string `json:"reason"`
}

type RoomListPayload struct {
	Rooms []RoomSummary `json:"rooms"`
}

type RoleRevealedPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type KickedPayload struct {
	RoomCode string `json:"roomCode"`
	Reason   string `json:"reason"`
}

type ErrorPayload struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}
