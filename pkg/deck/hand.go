package deck

import (
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// FirstCard returns the first card in the hand and false if the hand is empty
func (h Hand) FirstCard() (Card, bool) {
	if len(h) == 0 {
		return Card{}, false
	}

	return h[0], true
}

// LastCard returns the last card in the hand and false if the hand is empty
func (h Hand) LastCard() (Card, bool) {
	n := len(h)
	if n == 0 {
		return Card{}, false
	}

	return h[n-1], true
}

func (h Hand) String() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
