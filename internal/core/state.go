package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second the platform calls Step at (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Lines cleared in the current run
	Pieces   int  // Pieces spawned in the current run
	GameOver bool // Set from a game over until the next piece can spawn
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventPieceLocked
	EventLinesCleared
	EventGameOver
	EventRestart
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventPieceLocked:
		return "piece_locked"
	case EventLinesCleared:
		return "lines_cleared"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Score  int // Score after the event; final score for EventGameOver
	Lines  int // Lines cleared by this event, or run total for EventGameOver
	Pieces int // Pieces spawned this run (EventGameOver only)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
