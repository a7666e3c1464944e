package playable

import "time"

// Tickable is a game that moves forward on its own between player actions
type Tickable interface {
	// Delay is the pause before the next tick
	Delay() time.Duration

	// Tick advances the game by a single step
	// Returns true if the state changed and clients should be updated
	Tick() (bool, error)

	// PendingTick returns true while the game is waiting on a tick to progress
	PendingTick() bool
}
