package usecase

import (
	"strings"
	"sync"
	"testing"
)

func TestPersonaGenerator_Generate(t *testing.T) {
	pg := NewPersonaGenerator()

	name1 := pg.Generate()
	if name1 == "" {
		t.Error("Expected codename to be non-empty")
	}

	name2 := pg.Generate()
	if name1 == name2 {
		t.Error("Expected unique codenames", name1, name2)
	}
}

func TestPersonaGenerator_Format(t *testing.T) {
	pg := NewPersonaGenerator()
	name := pg.Generate()

	parts := strings.Split(name, " ")
	if len(parts) < 2 {
		t.Errorf("Expected name format 'Adjective Noun', got: %s", name)
	}
}

func TestPersonaGenerator_Release(t *testing.T) {
	pg := NewPersonaGenerator()
	name := pg.Generate()

	if !pg.existing[name] {
		t.Error("Expected name to be marked as existing")
	}

	pg.Release(name)

	if pg.existing[name] {
		t.Error("Expected name to be released (removed from map)")
	}
	if pg.ActiveCount() != 0 {
		t.Errorf("Expected no active names, got %d", pg.ActiveCount())
	}

	// Releasing a hand-typed name is harmless
	pg.Release("Alice")
}

func TestPersonaGenerator_Exhaustion(t *testing.T) {
	pg := NewPersonaGenerator()
	total := len(adjectives)*len(nouns) + 10

	for i := 0; i < total; i++ {
		pg.Generate()
	}

	if pg.ActiveCount() < len(adjectives)*len(nouns) {
		t.Errorf("Expected at least %d names, got %d", len(adjectives)*len(nouns), pg.ActiveCount())
	}
}

func TestPersonaGenerator_Concurrency(t *testing.T) {
	pg := NewPersonaGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pg.Generate()
		}()
	}
	wg.Wait()

	if pg.ActiveCount() != 100 {
		t.Errorf("Expected 100 existing names, got %d", pg.ActiveCount())
	}
}
