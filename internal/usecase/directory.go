package usecase

import (
	"crypto/rand"
	"math/big"
	"sort"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// Directory holds every live room keyed by code. It has no lock of its own:
// only the coordinator goroutine touches it.
type Directory struct {
	rooms map[string]*domain.Room
}

// NewDirectory creates an empty directory
func NewDirectory() *Directory {
	return &Directory{
		rooms: make(map[string]*domain.Room),
	}
}

// Create installs a fresh lobby room at code, replacing whatever was there
func (d *Directory) Create(code, hostName, hostID, transportID string, settings domain.Settings) *domain.Room {
	room := domain.NewRoom(code, hostID, hostName, transportID, settings)
	d.rooms[code] = room
	return room
}

// Get returns a room by its code
func (d *Directory) Get(code string) (*domain.Room, bool) {
	room, ok := d.rooms[code]
	return room, ok
}

// Exists checks if a room exists
func (d *Directory) Exists(code string) bool {
	_, ok := d.rooms[code]
	return ok
}

// Remove deletes a room
func (d *Directory) Remove(code string) {
	delete(d.rooms, code)
}

// Len returns the number of live rooms
func (d *Directory) Len() int {
	return len(d.rooms)
}

// All returns the live rooms ordered by code
func (d *Directory) All() []*domain.Room {
	out := make([]*domain.Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Summaries projects every room for the room list
func (d *Directory) Summaries() []domain.RoomSummary {
	rooms := d.All()
	out := make([]domain.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	return out
}

// UniqueCode generates a room code not currently in use
func (d *Directory) UniqueCode() string {
	for {
		code := GenerateRoomCode()
		if !d.Exists(code) {
			return code
		}
	}
}

// GenerateRoomCode creates a random room code from an unambiguous alphabet
func GenerateRoomCode() string {
	code := make([]byte, domain.RoomCodeLength)
	max := big.NewInt(int64(len(domain.RoomCodeChars)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(int64(i))
		}
		code[i] = domain.RoomCodeChars[n.Int64()]
	}
	return string(code)
}
