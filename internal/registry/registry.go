// Package registry lets games announce themselves from init() so the hub
// can list and start them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/games-hub/internal/core"
)

// Game is what the terminal platform drives. Implementations hold only
// game logic; timing, input mapping and drawing to the terminal belong to
// the platform.
type Game interface {
	// ID is the stable identifier used on the command line ("pong").
	ID() string

	// Title is the display name ("Neon Pong").
	Title() string

	// Description is a one-line summary for the gallery listing.
	Description() string

	// Reset sizes the game to the terminal. It is called again on every
	// resize and must not discard a match in progress.
	Reset(cfg core.RuntimeConfig)

	// Step advances one rendered frame.
	Step(in core.FrameInput) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports what the platform needs to route keys.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics on an empty or duplicate ID since both
// are programming errors caught at startup.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title(), Description: g.Description()},
		factory: f,
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
