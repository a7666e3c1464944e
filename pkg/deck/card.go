package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCard is returned when a card string cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// Suits is every suit in the order they are built into a deck
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Symbol returns the display symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}

	return "?"
}

// SuitFromString parses a suit from a letter, name, or symbol
func SuitFromString(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "clubs", "♣":
		return Clubs, nil
	case "d", "diamonds", "♦", "♢":
		return Diamonds, nil
	case "h", "hearts", "♥", "♡":
		return Hearts, nil
	case "s", "spades", "♠":
		return Spades, nil
	}

	return "", fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, s)
}

// Rank is the rank of a card
type Rank int

// rank constants
const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks is every rank in the order they are built into a suit
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Value returns the blackjack value of the rank
// An ace is reported as 11; soft/hard reconciliation is up to the caller
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	}

	return int(r)
}

// IsFace returns true for J, Q, and K
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// IsTenValue returns true for any card worth ten
func (r Rank) IsTenValue() bool {
	return r >= Ten && r <= King
}

// Valid returns true if the rank is within A..K
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}

	if r.Valid() {
		return fmt.Sprintf("%d", int(r))
	}

	return "?"
}

// MarshalJSON encodes the rank as its display string
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts either a display string or an integer
func (r *Rank) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var i int
		if err := json.Unmarshal(b, &i); err != nil {
			return err
		}

		if !Rank(i).Valid() {
			return fmt.Errorf("%w: rank %d", ErrInvalidCard, i)
		}

		*r = Rank(i)
		return nil
	}

	rank, err := RankFromString(s)
	if err != nil {
		return err
	}

	*r = rank
	return nil
}

// RankFromString parses A, 2..10, J, Q, K (case-insensitive)
func RankFromString(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "1":
		return Ace, nil
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}

	return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, s)
}

// Card is an individual playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Value is shorthand for c.Rank.Value()
func (c Card) Value() int {
	return c.Rank.Value()
}

var cardRx = regexp.MustCompile(`(?i)^(10|[2-9akqjt])(.+)\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit>, e.g., "As", "10h", "K♠"
func CardFromString(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Card{}, fmt.Errorf("%w: could not parse card %q", ErrInvalidCard, s)
	}

	rank, err := RankFromString(match[1])
	if err != nil {
		return Card{}, err
	}

	suit, err := SuitFromString(match[2])
	if err != nil {
		return Card{}, err
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustCard is like CardFromString, but panics on error
// Intended for tests and fixed fixtures
func MustCard(s string) Card {
	c, err := CardFromString(s)
	if err != nil {
		panic(err)
	}

	return c
}

// CardsFromString will returns a slice of cards from a comma-separated list
func CardsFromString(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		card, err := CardFromString(part)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// MustCards is like CardsFromString, but panics on error
func MustCards(s string) []Card {
	cards, err := CardsFromString(s)
	if err != nil {
		panic(err)
	}

	return cards
}
