package usecase

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Codename pieces for players who join without a display name
var nouns = []string{
	"Fox", "Owl", "Raven", "Viper", "Lynx", "Otter", "Badger", "Falcon",
	"Heron", "Jackal", "Moth", "Cobra", "Mole", "Ferret", "Gecko", "Marten",
	"Lantern", "Compass", "Cipher", "Anchor", "Quill", "Mirror", "Domino", "Needle",
}

var adjectives = []string{
	"Quiet", "Shady", "Sly", "Nervous", "Clever", "Sleepy", "Sneaky", "Honest",
	"Curious", "Jumpy", "Silent", "Grumpy", "Lucky", "Polite", "Restless", "Smug",
}

// PersonaGenerator hands out unique codenames and takes them back when the
// player leaves for good
type PersonaGenerator struct {
	mu       sync.Mutex
	existing map[string]bool
}

// NewPersonaGenerator creates a new PersonaGenerator
func NewPersonaGenerator() *PersonaGenerator {
	return &PersonaGenerator{
		existing: make(map[string]bool),
	}
}

// Generate creates a unique codename
func (pg *PersonaGenerator) Generate() string {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	var name string
	maxAttempts := 100

	for i := 0; i < maxAttempts; i++ {
		name = fmt.Sprintf("%s %s", adjectives[rand.IntN(len(adjectives))], nouns[rand.IntN(len(nouns))])
		if !pg.existing[name] {
			break
		}
		if i == maxAttempts-1 {
			name = fmt.Sprintf("%s %d", name, rand.IntN(999))
		}
	}

	pg.existing[name] = true
	return name
}

// Release removes a codename from the active set. Names that were never
// generated are ignored.
func (pg *PersonaGenerator) Release(name string) {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	delete(pg.existing, name)
}

// ActiveCount returns the number of codenames in use
func (pg *PersonaGenerator) ActiveCount() int {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	return len(pg.existing)
}
