package blackjack

// Phase is the phase of the current round
type Phase string

// Phase constants
const (
	// PhaseIdle is between rounds, waiting for a bet
	PhaseIdle Phase = "idle"

	// PhaseDealing is while the initial four cards are dealt
	PhaseDealing Phase = "dealing"

	// PhasePlayerTurn is waiting on the player to act on the active hand
	PhasePlayerTurn Phase = "player-turn"

	// PhaseDealerTurn is while the dealer draws, one card per tick
	PhaseDealerTurn Phase = "dealer-turn"

	// PhaseSettlement is while bets are paid out
	PhaseSettlement Phase = "settlement"
)

// IsDealerHoleCardVisible returns true once the dealer has turned over the hole card
func (p Phase) IsDealerHoleCardVisible() bool {
	return p == PhaseDealerTurn || p == PhaseSettlement
}
