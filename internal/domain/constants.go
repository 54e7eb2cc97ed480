package domain

import "time"

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket message size in bytes
const MaxMessageSize = 4096

// LobbyGroup is the broadcast group every connected transport belongs to.
// Room list updates go here.
const LobbyGroup = "__lobby__"

// ==== Room Constants ====

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars excludes ambiguous characters (0/O, 1/I)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MaxDisplayNameLength caps display names in runes
	MaxDisplayNameLength = 32

	// MaxKeywordLength caps secret keywords in runes
	MaxKeywordLength = 64

	// MaxRoleCount caps each role quota; Quota cannot overflow below it
	MaxRoleCount = 100
)

// ==== Default Settings ====

const (
	DefaultVillagerCount = 3
	DefaultSpyCount      = 1
	DefaultWhiteHatCount = 0
)

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitAPI is the default rate limit for API endpoints (requests/sec)
	DefaultRateLimitAPI = 10

	// DefaultRateLimitWS is the default rate limit for WebSocket upgrades (req/sec)
	DefaultRateLimitWS = 5

	// DefaultRateLimitIntent is the per-connection intent rate (intents/sec)
	DefaultRateLimitIntent = 20
)

// ==== Timing Constants ====

const (
	// ResetDelay is how long the reveal stays up before the room returns to the lobby
	ResetDelay = 5 * time.Second

	// KickGrace gives the kicked notice time to flush before the socket closes
	KickGrace = 500 * time.Millisecond
)
