package hilo

import (
	"math"

	"blackjack-server/pkg/deck"
)

// HistorySize is the number of recent cards kept for display
const HistorySize = 30

// ValueOf returns the Hi-Lo tag for the rank
// 2-6 are +1, 7-9 are 0, and ten-value cards and aces are -1
func ValueOf(rank deck.Rank) int {
	switch {
	case rank >= deck.Two && rank <= deck.Six:
		return 1
	case rank >= deck.Seven && rank <= deck.Nine:
		return 0
	}

	return -1
}

// Counter tracks the Hi-Lo running count since the last reshuffle
// Counter implements deck.Observer
type Counter struct {
	running int
	history *History
}

// NewCounter returns a zeroed counter
func NewCounter() *Counter {
	return &Counter{
		history: NewHistory(HistorySize),
	}
}

// CardSeen adds the card's tag to the running count
// This applies to dealt cards and burned cards alike
func (c *Counter) CardSeen(card deck.Card) {
	delta := ValueOf(card.Rank)
	c.running += delta
	c.history.Push(Entry{
		Rank:       card.Rank,
		Suit:       card.Suit,
		CountDelta: delta,
	})
}

// Reshuffled resets the running count
func (c *Counter) Reshuffled() {
	c.running = 0
	c.history.Clear()
}

// RunningCount returns the running count
func (c *Counter) RunningCount() int {
	return c.running
}

// History returns the most recent cards, newest first
func (c *Counter) History() []Entry {
	return c.history.Entries()
}

// DecksRemaining estimates how many decks are left in the shoe, never less than one
func DecksRemaining(cardsRemaining int) float64 {
	return math.Max(1, float64(cardsRemaining)/deck.CardsPerDeck)
}

// TrueCount returns the running count divided by the decks remaining, floored toward -∞
func TrueCount(running int, cardsRemaining int) int {
	return int(math.Floor(float64(running) / DecksRemaining(cardsRemaining)))
}

// TrueCount is the counter's running count normalized by the cards remaining
func (c *Counter) TrueCount(cardsRemaining int) int {
	return TrueCount(c.running, cardsRemaining)
}
