// Package handvalue computes blackjack hand values
package handvalue

import (
	"fmt"

	"blackjack-server/pkg/deck"
)

// Blackjack is the target total
const Blackjack = 21

// Value is the reconciled value of a hand
type Value struct {
	Total int  `json:"total"`
	Soft  bool `json:"soft"`
}

func (v Value) String() string {
	if v.Soft {
		return fmt.Sprintf("soft %d", v.Total)
	}

	return fmt.Sprintf("hard %d", v.Total)
}

// Evaluate sums the cards with every ace as 11, then converts aces to 1
// one at a time until the total is 21 or less or no soft ace remains
func Evaluate(cards []deck.Card) Value {
	total := 0
	softAces := 0
	for _, card := range cards {
		total += card.Value()
		if card.Rank == deck.Ace {
			softAces++
		}
	}

	for total > Blackjack && softAces > 0 {
		total -= 10
		softAces--
	}

	return Value{
		Total: total,
		Soft:  softAces > 0,
	}
}

// Total returns the best total of the hand
func Total(cards []deck.Card) int {
	return Evaluate(cards).Total
}

// IsSoft returns true if an ace is still counted as 11
func IsSoft(cards []deck.Card) bool {
	return Evaluate(cards).Soft
}

// IsBlackjack returns true for 21 on exactly two cards
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Total(cards) == Blackjack
}

// IsBust returns true if the total exceeds 21
func IsBust(cards []deck.Card) bool {
	return Total(cards) > Blackjack
}

// SplitRank returns the rank used to decide if two cards are a pair
// Every ten-value card shares the rank of Ten
func SplitRank(card deck.Card) deck.Rank {
	if card.Rank.IsTenValue() {
		return deck.Ten
	}

	return card.Rank
}

// IsPair returns true if the hand is exactly two cards of the same split rank
func IsPair(cards []deck.Card) bool {
	return len(cards) == 2 && SplitRank(cards[0]) == SplitRank(cards[1])
}

// CanSplit returns true if the hand may be split
func CanSplit(cards []deck.Card, alreadySplit, hasActed bool, balance, bet int) bool {
	if alreadySplit || hasActed {
		return false
	}

	if !IsPair(cards) {
		return false
	}

	return balance >= bet
}
