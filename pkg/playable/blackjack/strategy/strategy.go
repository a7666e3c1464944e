// Package strategy recommends blackjack plays and bet sizes
package strategy

import (
	"fmt"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack/handvalue"
)

// Action is a recommended play
type Action string

// Action constants
const (
	ActionSplit     Action = "split"
	ActionBust      Action = "bust"
	ActionBlackjack Action = "blackjack"
	ActionStand     Action = "stand"
	ActionHit       Action = "hit"
	ActionDouble    Action = "double"
)

// Advice is the advisor's recommendation for the active hand
type Advice struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// Recommend returns the play for the hand against the dealer up-card
// runningCount is the Hi-Lo running count
func Recommend(hand []deck.Card, dealerUp deck.Card, runningCount int, canDouble, canSplit bool) Advice {
	dealer := dealerUp.Value()

	if canSplit && handvalue.IsPair(hand) {
		rank := handvalue.SplitRank(hand[0])
		if ShouldSplit(rank, dealer) {
			return Advice{
				Action: ActionSplit,
				Reason: fmt.Sprintf("split %ss vs dealer %s", rank, dealerUp.Rank),
			}
		}
	}

	value := handvalue.Evaluate(hand)
	if value.Total > handvalue.Blackjack {
		return Advice{Action: ActionBust, Reason: fmt.Sprintf("busted with %d", value.Total)}
	}

	if handvalue.IsBlackjack(hand) {
		return Advice{Action: ActionBlackjack, Reason: "blackjack"}
	}

	base := baseAction(value, dealer, canDouble)
	reason := fmt.Sprintf("%s vs dealer %s: %s", value, dealerUp.Rank, base)

	return adjustForCount(base, reason, value.Total, dealer, runningCount, canDouble)
}

// ShouldSplit returns true if basic strategy splits the pair against the dealer value (2-11)
func ShouldSplit(rank deck.Rank, dealer int) bool {
	switch rank {
	case deck.Ace, deck.Eight:
		return true
	case deck.Ten, deck.Jack, deck.Queen, deck.King, deck.Five:
		return false
	case deck.Nine:
		return (dealer >= 2 && dealer <= 6) || dealer == 8 || dealer == 9
	case deck.Seven:
		return dealer >= 2 && dealer <= 7
	case deck.Six:
		return dealer >= 2 && dealer <= 6
	case deck.Four:
		return dealer == 5 || dealer == 6
	case deck.Two, deck.Three:
		return dealer >= 4 && dealer <= 7
	}

	return false
}

func doubleElseHit(canDouble bool) Action {
	if canDouble {
		return ActionDouble
	}

	return ActionHit
}

// baseAction is the count-neutral basic strategy table
func baseAction(value handvalue.Value, dealer int, canDouble bool) Action {
	total := value.Total

	if value.Soft {
		switch {
		case total >= 19:
			return ActionStand
		case total == 18:
			if dealer >= 9 {
				return doubleElseHit(canDouble)
			}

			return ActionStand
		case total == 17:
			return doubleElseHit(canDouble)
		case total >= 13:
			if dealer <= 6 {
				return doubleElseHit(canDouble)
			}

			return ActionHit
		}

		return ActionHit
	}

	switch {
	case total >= 17:
		return ActionStand
	case total >= 13:
		if dealer <= 6 {
			return ActionStand
		}

		return ActionHit
	case total == 12:
		if dealer >= 4 && dealer <= 6 {
			return ActionStand
		}

		return ActionHit
	case total == 11:
		return doubleElseHit(canDouble)
	case total == 10:
		if dealer <= 9 {
			return doubleElseHit(canDouble)
		}

		return ActionHit
	case total == 9:
		if dealer >= 3 && dealer <= 6 {
			return doubleElseHit(canDouble)
		}

		return ActionHit
	}

	return ActionHit
}

// adjustForCount applies the running count deviations on top of the base action
func adjustForCount(base Action, reason string, total, dealer, runningCount int, canDouble bool) Advice {
	if runningCount > -2 && runningCount < 2 {
		return Advice{Action: base, Reason: reason}
	}

	if runningCount >= 2 {
		if base == ActionStand && total <= 16 && dealer >= 7 && runningCount >= 3 {
			return Advice{
				Action: ActionHit,
				Reason: fmt.Sprintf("%s; running count %+d favors hitting", reason, runningCount),
			}
		}

		if base == ActionHit && total >= 9 && total <= 11 && dealer <= 9 && canDouble {
			return Advice{
				Action: ActionDouble,
				Reason: fmt.Sprintf("%s; running count %+d favors doubling", reason, runningCount),
			}
		}

		return Advice{
			Action: base,
			Reason: fmt.Sprintf("%s; running count %+d (rich in tens)", reason, runningCount),
		}
	}

	if base == ActionHit && total >= 12 && dealer <= 6 {
		return Advice{
			Action: ActionStand,
			Reason: fmt.Sprintf("%s; running count %+d favors standing", reason, runningCount),
		}
	}

	if base == ActionDouble {
		return Advice{
			Action: ActionHit,
			Reason: fmt.Sprintf("%s; running count %+d, hit instead of doubling", reason, runningCount),
		}
	}

	return Advice{
		Action: base,
		Reason: fmt.Sprintf("%s; running count %+d (rich in small cards)", reason, runningCount),
	}
}
