// Package registry maps game IDs to factories. Each variant registers itself
// from init(), so the CLI can list and create variants by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is implemented by every playable variant. Games hold pure simulation
// state and never import the terminal shell; the shell owns input, timing
// and display.
type Game interface {
	ID() string    // Registry key, e.g. "blockfall_mini"
	Title() string // Display name

	// Reset starts from scratch with the given screen size, frame rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one platform frame with the actions queued since the
	// previous frame, and reports the resulting state and events.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// Configurable is implemented by games that accept a loaded configuration.
// Configure must be called before Reset to take effect.
type Configurable interface {
	Configure(cfg config.BlockfallConfig) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// entry is one registered game. The title is captured once at registration
// so listing does not construct games.
type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory to the registry. Called from a game's init().
// Panics if the ID is already taken or the factory builds a game with a
// different ID.
func Register(id string, f Factory) {
	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds game %q", id, g.ID()))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title()},
		factory: f,
	}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
