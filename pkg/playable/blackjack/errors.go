package blackjack

import (
	"errors"

	"blackjack-server/pkg/deck"
)

// ErrInvalidBet is returned when a bet is below the minimum or exceeds the balance
var ErrInvalidBet = errors.New("invalid bet")

// ErrInvalidAction is returned when an action is not legal in the current phase or hand
var ErrInvalidAction = errors.New("invalid action")

// ErrRoundInProgress is returned when a round-level change is attempted mid-round
var ErrRoundInProgress = errors.New("round is in progress")

// ErrCardUnavailable is returned when a manually entered card has no copies left in the shoe
var ErrCardUnavailable = deck.ErrCardUnavailable

// ErrConfiguration is returned when the shoe configuration is invalid
var ErrConfiguration = deck.ErrConfiguration
