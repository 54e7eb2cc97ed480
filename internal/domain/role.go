package domain

// Role is a secret assignment handed out for one round
type Role string

const (
	RoleNone     Role = ""
	RoleVillager Role = "villager"
	RoleSpy      Role = "spy"
	RoleWhiteHat Role = "whiteHat"
)

// Assignment pairs a participant with the role they drew this round
type Assignment struct {
	ParticipantID string
	Role          Role
	Keyword       string
}

// RevealEntry is one line of the game_ended payload
type RevealEntry struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Role          Role   `json:"role"`
	Keyword       string `json:"keyword"`
}
