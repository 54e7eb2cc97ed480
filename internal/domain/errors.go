package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("only the host can do that")
	ErrInvalidState        = errors.New("not allowed in the current room state")
	ErrInsufficientPlayers = errors.New("not enough online players for the configured roles")
	ErrDuplicateRoomCode   = errors.New("room code already in use")
	ErrInvalidSettings     = errors.New("invalid settings")
	ErrNoRoles             = errors.New("no roles configured")
	ErrInvalidIntent       = errors.New("invalid intent")
)

// ErrorCode maps an error to the code sent in error_message payloads.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, ErrDuplicateRoomCode):
		return "duplicate_room_code"
	case errors.Is(err, ErrInvalidSettings):
		return "invalid_settings"
	case errors.Is(err, ErrNoRoles):
		return "no_roles"
	case errors.Is(err, ErrInvalidIntent):
		return "invalid_intent"
	default:
		return "internal"
	}
}
