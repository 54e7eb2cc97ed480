package usecase

import (
	"fmt"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

func (c *Coordinator) createRoom(transportID string, p domain.CreateRoomPayload) error {
	if p.ParticipantID == "" {
		return fmt.Errorf("%w: create_room needs a participantId", domain.ErrInvalidIntent)
	}

	code := NormalizeRoomCode(p.RoomCode)
	if code == "" {
		code = c.rooms.UniqueCode()
	}
	if !IsValidRoomCode(code) {
		return fmt.Errorf("%w: bad room code %q", domain.ErrInvalidIntent, p.RoomCode)
	}

	if old, ok := c.rooms.Get(code); ok {
		if c.codePolicy != RoomCodeOverwrite {
			return fmt.Errorf("room %q: %w", code, domain.ErrDuplicateRoomCode)
		}
		c.dissolve(old, "replaced")
	}

	name, codename := SanitizeName(p.HostName), ""
	if name == "" {
		name = c.names.Generate()
		codename = name
	}

	room := c.rooms.Create(code, name, p.ParticipantID, transportID, c.settings)
	room.Host().Codename = codename
	c.out.AddToGroup(transportID, code)
	c.out.SendToTransport(transportID, domain.MessageTypeRoomCreated, domain.RoomCreatedPayload{
		RoomCode: code,
		Settings: room.Settings,
	})
	c.notify.PlayersChanged(room)
	c.directoryChanged()

	c.log.Info("room created", "room", code, "host", p.ParticipantID, "host_name", name)
	return nil
}

func (c *Coordinator) joinRoom(transportID string, p domain.JoinRoomPayload) error {
	if p.ParticipantID == "" {
		return fmt.Errorf("%w: join_room needs a participantId", domain.ErrInvalidIntent)
	}
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}

	name, codename := SanitizeName(p.DisplayName), ""
	existing, seated := room.Player(p.ParticipantID)
	switch {
	case !seated && name == "":
		name = c.names.Generate()
		codename = name
	case seated && name != "" && name != existing.Codename:
		// a chosen name replaces the held codename
		c.releaseName(existing)
	}

	res := room.Join(p.ParticipantID, transportID, name)
	if codename != "" {
		res.Player.Codename = codename
	}
	c.bound(room, transportID, res)

	c.log.Info("player joined", "room", room.Code, "participant", p.ParticipantID, "rejoined", res.Rejoined)
	return nil
}

func (c *Coordinator) reconnectRoom(transportID string, p domain.RoomRequestPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	res, err := room.Reconnect(p.ParticipantID, transportID)
	if err != nil {
		return err
	}
	c.bound(room, transportID, res)

	c.log.Info("player reconnected", "room", room.Code, "participant", p.ParticipantID)
	return nil
}

// bound finishes a join or reconnect once the player holds transportID
func (c *Coordinator) bound(room *domain.Room, transportID string, res domain.JoinResult) {
	player := res.Player
	if res.PreviousTransport != "" {
		c.out.RemoveFromGroup(res.PreviousTransport, room.Code)
	}
	c.out.AddToGroup(transportID, room.Code)

	if res.Rejoined {
		// No second welcome: bring the new transport up to date privately
		c.out.SendToTransport(transportID, domain.MessageTypeSettingsUpdated, domain.SettingsUpdatedPayload{
			RoomCode: room.Code,
			Settings: room.Settings,
		})
	} else {
		c.out.SendToTransport(transportID, domain.MessageTypeJoinedSuccess, domain.JoinedSuccessPayload{
			RoomCode:      room.Code,
			ParticipantID: player.ParticipantID,
			DisplayName:   player.DisplayName,
			Seat:          player.Seat,
			State:         room.State,
			Settings:      room.Settings,
		})
	}

	if !c.notify.PlayersChanged(room) {
		c.notify.SendPlayersTo(transportID, room)
	}

	// Roles are never re-dealt; a returning player just gets theirs again
	if room.State == domain.StateActive && player.HasRole() {
		c.sendRole(room, player)
	}
	c.directoryChanged()
}

func (c *Coordinator) leaveRoom(transportID string, p domain.RoomRequestPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	player, ok := room.Player(p.ParticipantID)
	if !ok {
		return fmt.Errorf("participant %q: %w", p.ParticipantID, domain.ErrNotFound)
	}

	if player.IsHost() {
		if c.hostLeave == HostLeaveRetain {
			if player.TransportID != "" {
				c.out.RemoveFromGroup(player.TransportID, room.Code)
			}
			player.Unbind()
			c.notify.PlayersChanged(room)
			c.directoryChanged()
			c.log.Info("host left, room kept", "room", room.Code)
			return nil
		}
		c.dissolve(room, "host_left")
		c.log.Info("host left, room dissolved", "room", room.Code)
		return nil
	}

	room.Remove(player.ParticipantID)
	if player.TransportID != "" {
		c.out.RemoveFromGroup(player.TransportID, room.Code)
	}
	c.releaseName(player)
	c.notify.PlayersChanged(room)
	c.directoryChanged()

	c.log.Info("player left", "room", room.Code, "participant", player.ParticipantID)
	return nil
}

func (c *Coordinator) kickPlayer(transportID string, p domain.KickPlayerPayload) error {
	room, err := c.lookup(p.RoomCode)
	if err != nil {
		return err
	}
	if !room.IsHost(p.HostID) {
		return fmt.Errorf("kick in room %s: %w", room.Code, domain.ErrUnauthorized)
	}
	if p.TargetParticipantID == room.HostID {
		return fmt.Errorf("%w: the host cannot be kicked", domain.ErrInvalidState)
	}
	target, ok := room.Remove(p.TargetParticipantID)
	if !ok {
		return fmt.Errorf("participant %q: %w", p.TargetParticipantID, domain.ErrNotFound)
	}

	if target.TransportID != "" {
		c.out.SendToTransport(target.TransportID, domain.MessageTypeKicked, domain.KickedPayload{
			RoomCode: room.Code,
			Reason:   "You have been kicked by the host.",
		})
		c.out.RemoveFromGroup(target.TransportID, room.Code)
		c.out.TerminateTransport(target.TransportID)
	}
	c.releaseName(target)
	c.notify.PlayersChanged(room)
	c.directoryChanged()

	c.log.Info("player kicked", "room", room.Code, "participant", target.ParticipantID)
	return nil
}

// disconnect marks offline whoever still holds transportID. Matching is by
// transport, so a stale loss after a reconnect finds nothing to do.
func (c *Coordinator) disconnect(transportID string) {
	changed := false
	for _, room := range c.rooms.All() {
		player, ok := room.MarkOffline(transportID)
		if !ok {
			continue
		}
		changed = true
		c.notify.PlayersChanged(room)
		c.log.Info("player offline", "room", room.Code, "participant", player.ParticipantID)
	}
	if changed {
		c.directoryChanged()
	}
}

func (c *Coordinator) getRooms(transportID string) {
	c.out.SendToTransport(transportID, domain.MessageTypeRoomListUpdate, domain.RoomListPayload{
		Rooms: c.rooms.Summaries(),
	})
}

// dissolve tells the room it is gone, empties its group and forgets it
func (c *Coordinator) dissolve(room *domain.Room, reason string) {
	c.out.SendToGroup(room.Code, domain.MessageTypeRoomDeleted, domain.RoomDeletedPayload{
		RoomCode: room.Code,
		Reason:   reason,
	})
	c.out.EvictAllFromGroup(room.Code)
	c.rooms.Remove(room.Code)
	c.notify.Forget(room.Code)
	for _, p := range room.Players {
		c.releaseName(p)
	}
	c.directoryChanged()
}

// releaseName hands a generated codename back. Chosen names were never
// taken from the generator and are left alone.
func (c *Coordinator) releaseName(p *domain.Player) {
	if p.Codename == "" {
		return
	}
	c.names.Release(p.Codename)
	p.Codename = ""
}
