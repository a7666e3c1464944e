package blackjack

import (
	"errors"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"

	"github.com/coder/quartz"
)

// Options contains options for creating a new game of blackjack
type Options struct {
	MinBet        int
	CutCardBuffer int

	// DealerStepDelay is the pause between dealer draws when the game is ticked
	DealerStepDelay time.Duration

	// DealerWatchdog is how long a dealer turn may run before it is force-settled
	DealerWatchdog time.Duration

	// MaxDealerSteps is how many cards the dealer may draw before the turn is force-settled
	MaxDealerSteps int

	// RNG shuffles the shoe; nil selects rng.New(false), a math/rand source seeded from the current time
	RNG rng.Generator

	// Clock measures the dealer watchdog; defaults to the real clock
	Clock quartz.Clock
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		MinBet:          50,
		CutCardBuffer:   deck.CutCardBuffer,
		DealerStepDelay: 750 * time.Millisecond,
		DealerWatchdog:  30 * time.Second,
		MaxDealerSteps:  20,
	}
}

func (o Options) validate() error {
	if o.MinBet <= 0 {
		return errors.New("minimum bet must be > 0")
	}

	if o.CutCardBuffer < 0 {
		return errors.New("cut card buffer cannot be negative")
	}

	if o.MaxDealerSteps < 0 {
		return errors.New("max dealer steps cannot be negative")
	}

	return nil
}

// Snapshot is the persistent state of a game
// A game can be rebuilt from a snapshot, but any unfinished round is lost
type Snapshot struct {
	Balance            int     `json:"balance" yaml:"balance"`
	DeckCount          int     `json:"deckCount" yaml:"deckCount"`
	PenetrationPercent float64 `json:"penetrationPercent" yaml:"penetrationPercent"`
}

// DefaultSnapshot returns the snapshot for a fresh session
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Balance:            1000,
		DeckCount:          6,
		PenetrationPercent: 75,
	}
}
