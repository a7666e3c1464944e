package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"blackjack-server/internal/rng"
)

// CardsPerDeck is the number of cards in a single standard deck
const CardsPerDeck = 52

// CutCardBuffer is the number of cards left before the cut card at which a
// new round forces a reshuffle
const CutCardBuffer = 15

// ErrConfiguration is returned when the shoe is built with invalid parameters
var ErrConfiguration = errors.New("invalid shoe configuration")

// ErrCardUnavailable is returned when a specific card has no remaining copies in the shoe
var ErrCardUnavailable = errors.New("card is not available in the shoe")

// Observer is notified when cards leave the shoe and when the shoe is rebuilt
type Observer interface {
	CardSeen(card Card)
	Reshuffled()
}

// Shoe is a multi-deck card supply
// The top of the shoe is the end of the cards slice
type Shoe struct {
	cards              []Card
	decks              int
	penetrationPercent float64
	penetrationLimit   int
	generation         int

	rng      rng.Generator
	observer Observer
}

// NewShoe builds and shuffles a new shoe
// observer may be nil
func NewShoe(decks int, penetrationPercent float64, gen rng.Generator, observer Observer) (*Shoe, error) {
	if gen == nil {
		gen = rng.New(false)
	}

	s := &Shoe{
		rng:      gen,
		observer: observer,
	}

	if err := s.Build(decks, penetrationPercent); err != nil {
		return nil, err
	}

	return s, nil
}

// ValidateConfiguration returns an ErrConfiguration if the parameters cannot build a shoe
func ValidateConfiguration(decks int, penetrationPercent float64) error {
	if decks <= 0 {
		return fmt.Errorf("%w: deck count must be > 0, got %d", ErrConfiguration, decks)
	}

	if math.IsNaN(penetrationPercent) || penetrationPercent <= 0 || penetrationPercent > 100 {
		return fmt.Errorf("%w: penetration must be in (0, 100], got %v", ErrConfiguration, penetrationPercent)
	}

	return nil
}

// Build replaces the shoe with decks full decks and shuffles it
// On error, the previous configuration and cards are retained
func (s *Shoe) Build(decks int, penetrationPercent float64) error {
	if err := ValidateConfiguration(decks, penetrationPercent); err != nil {
		return err
	}

	total := decks * CardsPerDeck
	cards := make([]Card, 0, total)
	for i := 0; i < decks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, Card{Rank: rank, Suit: suit})
			}
		}
	}

	for j := len(cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}

	s.cards = cards
	s.decks = decks
	s.penetrationPercent = penetrationPercent
	s.penetrationLimit = int(math.Floor(float64(total) * penetrationPercent / 100))
	if s.penetrationLimit > total {
		s.penetrationLimit = total
	}

	s.generation++

	if s.observer != nil {
		s.observer.Reshuffled()
	}

	return nil
}

// Reset rebuilds the shoe with the current configuration
func (s *Shoe) Reset() {
	if err := s.Build(s.decks, s.penetrationPercent); err != nil {
		// the current configuration was validated when it was set
		panic(err)
	}
}

// SetObserver replaces the observer
func (s *Shoe) SetObserver(observer Observer) {
	s.observer = observer
}

// Deal pops the top card
// If the shoe is exhausted or the penetration limit was reached, the shoe is
// rebuilt before dealing, so a card is always returned
func (s *Shoe) Deal() Card {
	card, _ := s.DealFaceDown()

	if s.observer != nil {
		s.observer.CardSeen(card)
	}

	return card
}

// DealFaceDown is like Deal, but the observer is not notified
// The returned generation must be passed to Reveal when the card is turned over
func (s *Shoe) DealFaceDown() (Card, int) {
	if len(s.cards) == 0 || s.CardsDealt() >= s.penetrationLimit {
		s.Reset()
	}

	n := len(s.cards) - 1
	card := s.cards[n]
	s.cards = s.cards[:n]

	return card, s.generation
}

// Reveal notifies the observer of a card dealt face down
// If the shoe was rebuilt since the card was dealt, the card is not part of
// the current shoe and is ignored
func (s *Shoe) Reveal(card Card, generation int) {
	if generation != s.generation || s.observer == nil {
		return
	}

	s.observer.CardSeen(card)
}

// Generation increments every time the shoe is rebuilt
func (s *Shoe) Generation() int {
	return s.generation
}

// RemoveSpecific removes a single matching card from the shoe
// Returns false if no copies remain
func (s *Shoe) RemoveSpecific(rank Rank, suit Suit) bool {
	idx := s.find(Card{Rank: rank, Suit: suit})
	if idx < 0 {
		return false
	}

	card := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)

	if s.observer != nil {
		s.observer.CardSeen(card)
	}

	return true
}

// Stack moves the specified cards to the top of the shoe, so they are dealt
// in the order given. The cards must still be in the shoe.
func (s *Shoe) Stack(cards ...Card) error {
	for _, card := range cards {
		if s.Count(card.Rank, card.Suit) < countIn(cards, card) {
			return fmt.Errorf("%w: %s", ErrCardUnavailable, card)
		}
	}

	for _, card := range cards {
		idx := s.find(card)
		s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	}

	for i := len(cards) - 1; i >= 0; i-- {
		s.cards = append(s.cards, cards[i])
	}

	return nil
}

// Count returns how many copies of the card remain in the shoe
func (s *Shoe) Count(rank Rank, suit Suit) int {
	count := 0
	for _, c := range s.cards {
		if c.Rank == rank && c.Suit == suit {
			count++
		}
	}

	return count
}

// find returns the index closest to the top of the shoe matching the card, or -1
func (s *Shoe) find(card Card) int {
	for i := len(s.cards) - 1; i >= 0; i-- {
		if s.cards[i].Equal(card) {
			return i
		}
	}

	return -1
}

func countIn(cards []Card, card Card) int {
	n := 0
	for _, c := range cards {
		if c.Equal(card) {
			n++
		}
	}

	return n
}

// Decks returns the number of decks the shoe was built with
func (s *Shoe) Decks() int {
	return s.decks
}

// PenetrationPercent returns the configured penetration
func (s *Shoe) PenetrationPercent() float64 {
	return s.penetrationPercent
}

// PenetrationLimit returns the number of cards that may be dealt before a reshuffle
func (s *Shoe) PenetrationLimit() int {
	return s.penetrationLimit
}

// Size returns the number of cards the shoe holds when full
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// CardsDealt returns the number of cards that have left the shoe since the last shuffle
func (s *Shoe) CardsDealt() int {
	return s.Size() - len(s.cards)
}

// CardsLeftBeforeCut returns how many cards can be dealt before reaching the cut card
func (s *Shoe) CardsLeftBeforeCut() int {
	return s.penetrationLimit - s.CardsDealt()
}

// NeedsReshuffle returns true if the cut card is within buffer cards
func (s *Shoe) NeedsReshuffle(buffer int) bool {
	return s.CardsLeftBeforeCut() <= buffer
}

// HashCode returns a SHA1 hash code of the remaining cards, in order
func (s *Shoe) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range s.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
