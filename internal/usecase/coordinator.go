package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
	"github.com/mmuslimabdulj/spyroom/internal/logger"
)

// HostLeavePolicy decides what an explicit host leave does to the room
type HostLeavePolicy string

const (
	// HostLeaveDissolve deletes the room and evicts everyone
	HostLeaveDissolve HostLeavePolicy = "dissolve"
	// HostLeaveRetain marks the host offline and keeps the room for a reconnect
	HostLeaveRetain HostLeavePolicy = "retain"
)

// RoomCodePolicy decides what create_room does with a code already in use
type RoomCodePolicy string

const (
	RoomCodeReject    RoomCodePolicy = "reject"
	RoomCodeOverwrite RoomCodePolicy = "overwrite"
)

// ErrStopped is returned by queries made after Run has returned
var ErrStopped = errors.New("coordinator stopped")

// NameSource hands out codenames for players who join without a name
type NameSource interface {
	Generate() string
	Release(name string)
}

// Options configures a Coordinator. Zero values fall back to defaults.
type Options struct {
	ResetDelay      time.Duration
	HostLeavePolicy HostLeavePolicy
	RoomCodePolicy  RoomCodePolicy
	DefaultSettings *domain.Settings
	Names           NameSource
	Rand            *rand.Rand
	Logger          *slog.Logger

	// AfterFunc schedules the delayed round reset. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func())
}

// Coordinator is the single owner of all room state. Intents, transport
// losses and delayed resets are queued and run one at a time on the Run
// goroutine, so handlers never need locks.
type Coordinator struct {
	rooms    *Directory
	notify   *Notifier
	out      Broadcaster
	names    NameSource
	rng      *rand.Rand
	settings domain.Settings

	resetDelay time.Duration
	hostLeave  HostLeavePolicy
	codePolicy RoomCodePolicy
	afterFunc  func(time.Duration, func())

	intents chan func()
	done    chan struct{}
	log     *slog.Logger
}

// NewCoordinator creates a coordinator that emits through out
func NewCoordinator(out Broadcaster, opts Options) *Coordinator {
	c := &Coordinator{
		rooms:      NewDirectory(),
		notify:     NewNotifier(out),
		out:        out,
		names:      opts.Names,
		rng:        opts.Rand,
		settings:   domain.DefaultSettings(),
		resetDelay: opts.ResetDelay,
		hostLeave:  opts.HostLeavePolicy,
		codePolicy: opts.RoomCodePolicy,
		afterFunc:  opts.AfterFunc,
		intents:    make(chan func(), 256),
		done:       make(chan struct{}),
		log:        opts.Logger,
	}
	if opts.DefaultSettings != nil {
		c.settings = *opts.DefaultSettings
	}
	if c.names == nil {
		c.names = NewPersonaGenerator()
	}
	if c.resetDelay <= 0 {
		c.resetDelay = domain.ResetDelay
	}
	if c.hostLeave == "" {
		c.hostLeave = HostLeaveDissolve
	}
	if c.codePolicy == "" {
		c.codePolicy = RoomCodeReject
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if c.log == nil {
		c.log = logger.L()
	}
	c.log = c.log.With("component", "coordinator")
	return c
}

// Run processes queued work until ctx is cancelled
func (c *Coordinator) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case fn := <-c.intents:
			c.exec(fn)
		case <-ctx.Done():
			c.log.Info("coordinator stopping", "rooms", c.rooms.Len())
			return
		}
	}
}

// exec runs one unit of work. A panicking handler must not take the loop down.
func (c *Coordinator) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("intent handler panicked", "panic", r)
		}
	}()
	fn()
}

// submit queues fn for the Run goroutine. Dropped once Run has returned.
func (c *Coordinator) submit(fn func()) {
	select {
	case c.intents <- fn:
	case <-c.done:
	}
}

// Handle decodes a raw intent from a transport and queues it
func (c *Coordinator) Handle(transportID string, raw []byte) {
	var in domain.Intent
	if err := json.Unmarshal(raw, &in); err != nil || in.Type == "" {
		c.log.Debug("dropping malformed intent", "transport", transportID, "err", err)
		return
	}
	c.submit(func() { c.dispatch(transportID, in) })
}

// Disconnect queues a transport loss
func (c *Coordinator) Disconnect(transportID string) {
	c.submit(func() { c.disconnect(transportID) })
}

// ListRooms returns the room list from the Run goroutine
func (c *Coordinator) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	res := make(chan []domain.RoomSummary, 1)
	select {
	case c.intents <- func() { res <- c.rooms.Summaries() }:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrStopped
	}

	select {
	case rooms := <-res:
		return rooms, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrStopped
	}
}

// dispatch routes an intent and turns its error into a private notice.
// Missing rooms and participants stay silent except where the requester
// needs to know (join and reconnect).
func (c *Coordinator) dispatch(transportID string, in domain.Intent) {
	err := c.route(transportID, in)
	if err == nil {
		return
	}

	log := c.log.With("type", in.Type, "transport", transportID)
	if errors.Is(err, domain.ErrNotFound) &&
		in.Type != domain.MessageTypeJoinRoom && in.Type != domain.MessageTypeReconnectRoom {
		log.Debug("ignoring intent for missing target", "err", err)
		return
	}

	log.Info("intent rejected", "err", err)
	c.out.SendToTransport(transportID, domain.MessageTypeError, domain.ErrorPayload{
		Code:   domain.ErrorCode(err),
		Reason: err.Error(),
	})
}

func (c *Coordinator) route(transportID string, in domain.Intent) error {
	switch in.Type {
	case domain.MessageTypeCreateRoom:
		var p domain.CreateRoomPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.createRoom(transportID, p)

	case domain.MessageTypeJoinRoom:
		var p domain.JoinRoomPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.joinRoom(transportID, p)

	case domain.MessageTypeLeaveRoom:
		var p domain.RoomRequestPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.leaveRoom(transportID, p)

	case domain.MessageTypeReconnectRoom:
		var p domain.RoomRequestPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.reconnectRoom(transportID, p)

	case domain.MessageTypeUpdateSettings:
		var p domain.UpdateSettingsPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.updateSettings(transportID, p)

	case domain.MessageTypeStartGame:
		var p domain.RoomRequestPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.startGame(transportID, p)

	case domain.MessageTypeEndGame:
		var p domain.RoomRequestPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.endGame(transportID, p)

	case domain.MessageTypeKickPlayer:
		var p domain.KickPlayerPayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.kickPlayer(transportID, p)

	case domain.MessageTypeRevealRole:
		var p domain.RevealRolePayload
		if err := decode(in, &p); err != nil {
			return err
		}
		return c.revealRole(transportID, p)

	case domain.MessageTypeGetRooms:
		c.getRooms(transportID)
		return nil

	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidIntent, in.Type)
	}
}

func decode(in domain.Intent, dst any) error {
	if len(in.Payload) == 0 {
		return fmt.Errorf("%w: %s without payload", domain.ErrInvalidIntent, in.Type)
	}
	if err := json.Unmarshal(in.Payload, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidIntent, in.Type, err)
	}
	return nil
}

// lookup resolves a room by client supplied code
func (c *Coordinator) lookup(code string) (*domain.Room, error) {
	code = NormalizeRoomCode(code)
	room, ok := c.rooms.Get(code)
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, domain.ErrNotFound)
	}
	return room, nil
}

func (c *Coordinator) directoryChanged() {
	c.notify.DirectoryChanged(c.rooms.Summaries())
}
