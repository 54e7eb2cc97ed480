package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// roomCodeRegex matches normalized room codes: 3 to 12 upper-case letters or digits
var roomCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,12}$`)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// NormalizeRoomCode trims and upper-cases a client supplied code
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidRoomCode validates a normalized room code
func IsValidRoomCode(code string) bool {
	if code == "" {
		return false
	}
	return roomCodeRegex.MatchString(code)
}

// SanitizeName cleans a display name. It may return "".
func SanitizeName(name string) string {
	name = htmlTagRegex.ReplaceAllString(name, "")
	name = controlCharRegex.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if utf8.RuneCountInString(name) > domain.MaxDisplayNameLength {
		runes := []rune(name)
		name = strings.TrimSpace(string(runes[:domain.MaxDisplayNameLength]))
	}
	return name
}
