package domain

import (
	"fmt"
	"unicode/utf8"
)

// Keywords are the secret words handed to each role
type Keywords struct {
	Villager string `json:"villager" yaml:"villager"`
	Spy      string `json:"spy" yaml:"spy"`
	WhiteHat string `json:"whiteHat" yaml:"whiteHat"`
}

// Settings are the host-controlled role quotas and keywords of a room
type Settings struct {
	VillagerCount int      `json:"villagerCount" yaml:"villagerCount"`
	SpyCount      int      `json:"spyCount" yaml:"spyCount"`
	WhiteHatCount int      `json:"whiteHatCount" yaml:"whiteHatCount"`
	Keywords      Keywords `json:"keywords" yaml:"keywords"`
}

// DefaultSettings matches what a fresh room starts with
func DefaultSettings() Settings {
	return Settings{
		VillagerCount: DefaultVillagerCount,
		SpyCount:      DefaultSpyCount,
		WhiteHatCount: DefaultWhiteHatCount,
	}
}

// Quota is the number of players a round needs
func (s Settings) Quota() int {
	return s.VillagerCount + s.SpyCount + s.WhiteHatCount
}

func (s Settings) Validate() error {
	if s.VillagerCount < 0 || s.SpyCount < 0 || s.WhiteHatCount < 0 {
		return fmt.Errorf("%w: role counts must be non-negative", ErrInvalidSettings)
	}
	if s.VillagerCount > MaxRoleCount || s.SpyCount > MaxRoleCount || s.WhiteHatCount > MaxRoleCount {
		return fmt.Errorf("%w: role counts are capped at %d", ErrInvalidSettings, MaxRoleCount)
	}
	for _, kw := range []string{s.Keywords.Villager, s.Keywords.Spy, s.Keywords.WhiteHat} {
		if utf8.RuneCountInString(kw) > MaxKeywordLength {
			return fmt.Errorf("%w: keyword longer than %d characters", ErrInvalidSettings, MaxKeywordLength)
		}
	}
	return nil
}

// KeywordsPatch overrides individual keywords; nil keeps the prior value
type KeywordsPatch struct {
	Villager *string `json:"villager,omitempty"`
	Spy      *string `json:"spy,omitempty"`
	WhiteHat *string `json:"whiteHat,omitempty"`
}

// SettingsPatch is a partial update sent by the host
type SettingsPatch struct {
	VillagerCount *int           `json:"villagerCount,omitempty"`
	SpyCount      *int           `json:"spyCount,omitempty"`
	WhiteHatCount *int           `json:"whiteHatCount,omitempty"`
	Keywords      *KeywordsPatch `json:"keywords,omitempty"`
}

// Merge applies a patch: shallow on the counts, per-key on keywords
func (s Settings) Merge(p SettingsPatch) Settings {
	if p.VillagerCount != nil {
		s.VillagerCount = *p.VillagerCount
	}
	if p.SpyCount != nil {
		s.SpyCount = *p.SpyCount
	}
	if p.WhiteHatCount != nil {
		s.WhiteHatCount = *p.WhiteHatCount
	}
	if k := p.Keywords; k != nil {
		if k.Villager != nil {
			s.Keywords.Villager = *k.Villager
		}
		if k.Spy != nil {
			s.Keywords.Spy = *k.Spy
		}
		if k.WhiteHat != nil {
			s.Keywords.WhiteHat = *k.WhiteHat
		}
	}
	return s
}

// For returns the word a role receives. White hats never get one.
func (k Keywords) For(r Role) string {
	switch r {
	case RoleVillager:
		return k.Villager
	case RoleSpy:
		return k.Spy
	default:
		return ""
	}
}
