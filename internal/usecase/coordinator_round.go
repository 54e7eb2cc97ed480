package usecase

import (
	"fmt"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

func (c *Coordinator) updateSettings(transportID string, p domain.UpdateSettingsPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	if !room.IsHost(p.ParticipantID) {
		return fmt.Errorf("settings in room %s: %w", room.Code, domain.ErrUnauthorized)
	}
	if room.State != domain.StateLobby {
		return fmt.Errorf("%w: settings are locked during a round", domain.ErrInvalidState)
	}

	merged := room.Settings.Merge(p.Patch)
	if err := merged.Validate(); err != nil {
		return err
	}
	room.Settings = merged

	c.out.SendToGroup(room.Code, domain.MessageTypeSettingsUpdated, domain.SettingsUpdatedPayload{
		RoomCode: room.Code,
		Settings: room.Settings,
	})
	c.log.Info("settings updated", "room", room.Code,
		"villagers", merged.VillagerCount, "spies", merged.SpyCount, "white_hats", merged.WhiteHatCount)
	return nil
}

func (c *Coordinator) startGame(transportID string, p domain.RoomRequestPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	if !room.IsHost(p.ParticipantID) {
		return fmt.Errorf("start in room %s: %w", room.Code, domain.ErrUnauthorized)
	}
	if room.State == domain.StateActive {
		return fmt.Errorf("%w: round already active", domain.ErrInvalidState)
	}

	quota := room.Settings.Quota()
	if quota == 0 {
		return domain.ErrNoRoles
	}
	eligible := room.OnlineEligible()
	if len(eligible) < quota {
		return fmt.Errorf("%w: %d online, %d needed", domain.ErrInsufficientPlayers, len(eligible), quota)
	}

	ids := make([]string, 0, len(eligible))
	for _, pl := range eligible {
		ids = append(ids, pl.ParticipantID)
	}
	assignments := AssignRoles(c.rng, ids, room.Settings)

	room.ResetRoles()
	room.ApplyAssignments(assignments)
	room.State = domain.StateActive

	for _, pl := range room.Players {
		if pl.HasRole() {
			c.sendRole(room, pl)
		}
	}
	c.out.SendToGroup(room.Code, domain.MessageTypeGameStarted, domain.GameStartedPayload{
		RoomCode:    room.Code,
		PlayerCount: quota,
	})
	c.directoryChanged()

	c.log.Info("round started", "room", room.Code, "eligible", len(eligible), "assigned", quota)
	return nil
}

// endGame reveals the round and schedules the return to the lobby.
// Anyone in the room may end it; a named requester must be the host.
func (c *Coordinator) endGame(transportID string, p domain.RoomRequestPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	if p.ParticipantID != "" && !room.IsHost(p.ParticipantID) {
		return fmt.Errorf("end in room %s: %w", room.Code, domain.ErrUnauthorized)
	}
	if room.State != domain.StateActive || room.Revealing {
		return nil
	}

	room.Revealing = true
	c.out.SendToGroup(room.Code, domain.MessageTypeGameEnded, domain.GameEndedPayload{
		RoomCode: room.Code,
		Players:  room.Reveal(),
		ResetIn:  c.resetDelay.Milliseconds(),
	})

	c.afterFunc(c.resetDelay, func() {
		c.submit(func() { c.resetRound(room) })
	})

	c.log.Info("round ended", "room", room.Code, "reset_in", c.resetDelay)
	return nil
}

// resetRound runs after the reveal delay. The room may have been dissolved
// or replaced meanwhile, so it only acts on the same live, revealing room.
func (c *Coordinator) resetRound(room *domain.Room) {
	current, ok := c.rooms.Get(room.Code)
	if !ok || current != room || !room.Revealing {
		return
	}

	room.ResetRoles()
	c.out.SendToGroup(room.Code, domain.MessageTypeGameReset, domain.GameResetPayload{RoomCode: room.Code})
	c.notify.ResendPlayers(room)
	c.directoryChanged()

	c.log.Info("round reset", "room", room.Code)
}

func (c *Coordinator) revealRole(transportID string, p domain.RevealRolePayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	if _, ok := room.Player(p.ParticipantID); !ok {
		return fmt.Errorf("reveal in room %s: %w", room.Code, domain.ErrUnauthorized)
	}
	if _, ok := room.Player(p.PlayerID); !ok {
		return fmt.Errorf("participant %q: %w", p.PlayerID, domain.ErrNotFound)
	}

	c.out.SendToGroup(room.Code, domain.MessageTypeRoleRevealed, domain.RoleRevealedPayload{
		RoomCode: room.Code,
		PlayerID: p.PlayerID,
	})
	return nil
}

// sendRole delivers a player's assignment to their live transport only
func (c *Coordinator) sendRole(room *domain.Room, player *domain.Player) {
	if player.TransportID == "" {
		return
	}
	c.out.SendToTransport(player.TransportID, domain.MessageTypeRoleAssigned, domain.RoleAssignedPayload{
		RoomCode: room.Code,
		Role:     player.Role,
		Keyword:  player.Keyword,
	})
}
