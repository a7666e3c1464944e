package deck

import (
	"testing"

	"blackjack-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	seen       []Card
	reshuffles int
}

func (r *recorder) CardSeen(card Card) {
	r.seen = append(r.seen, card)
}

func (r *recorder) Reshuffled() {
	r.reshuffles++
	r.seen = nil
}

func newTestShoe(t *testing.T, decks int, pct float64) (*Shoe, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := NewShoe(decks, pct, rng.NewSeeded(1), rec)
	if err != nil {
		t.Fatal(err)
	}

	return s, rec
}

func TestNewShoe(t *testing.T) {
	a := assert.New(t)
	s, rec := newTestShoe(t, 6, 75)

	a.Equal(312, s.Remaining())
	a.Equal(0, s.CardsDealt())
	a.Equal(234, s.PenetrationLimit())
	a.Equal(1, rec.reshuffles)

	// every card appears exactly once per deck
	for _, suit := range Suits {
		for _, rank := range Ranks {
			a.Equal(6, s.Count(rank, suit))
		}
	}

	// same seed, same order
	s2, _ := newTestShoe(t, 6, 75)
	a.Equal(s.HashCode(), s2.HashCode())
}

func TestNewShoe_configuration(t *testing.T) {
	a := assert.New(t)

	for _, tc := range []struct {
		decks int
		pct   float64
	}{
		{0, 75},
		{-1, 75},
		{1, 0},
		{1, -5},
		{1, 100.5},
	} {
		_, err := NewShoe(tc.decks, tc.pct, nil, nil)
		a.ErrorIs(err, ErrConfiguration)
	}

	s, _ := newTestShoe(t, 1, 100)
	a.Equal(52, s.PenetrationLimit())

	s.Deal()
	a.ErrorIs(s.Build(0, 50), ErrConfiguration)
	a.Equal(1, s.Decks())
	a.Equal(51, s.Remaining())
	a.Equal(float64(100), s.PenetrationPercent())
}

func TestShoe_Deal(t *testing.T) {
	a := assert.New(t)
	s, rec := newTestShoe(t, 2, 50)

	a.Equal(52, s.PenetrationLimit())
	for i := 0; i < 52; i++ {
		s.Deal()
		a.Equal(s.Size(), s.Remaining()+s.CardsDealt())
	}

	a.Equal(52, s.CardsDealt())
	a.Equal(0, s.CardsLeftBeforeCut())
	a.Len(rec.seen, 52)

	// the penetration limit forces a rebuild before the next card
	s.Deal()
	a.Equal(2, rec.reshuffles)
	a.Equal(1, s.CardsDealt())
	a.Len(rec.seen, 1)
}

func TestShoe_NeedsReshuffle(t *testing.T) {
	a := assert.New(t)
	s, _ := newTestShoe(t, 1, 50)

	a.Equal(26, s.CardsLeftBeforeCut())
	a.False(s.NeedsReshuffle(CutCardBuffer))

	for i := 0; i < 11; i++ {
		s.Deal()
	}

	a.Equal(15, s.CardsLeftBeforeCut())
	a.True(s.NeedsReshuffle(CutCardBuffer))
}

func TestShoe_RemoveSpecific(t *testing.T) {
	a := assert.New(t)
	s, rec := newTestShoe(t, 1, 75)

	a.True(s.RemoveSpecific(King, Spades))
	a.Equal(51, s.Remaining())
	a.Equal(1, s.CardsDealt())
	a.Len(rec.seen, 1)

	a.False(s.RemoveSpecific(King, Spades))
	a.Equal(51, s.Remaining())
	a.Equal(1, s.CardsDealt())
	a.Len(rec.seen, 1)
	a.Equal(0, s.Count(King, Spades))
}

func TestShoe_Stack(t *testing.T) {
	a := assert.New(t)
	s, rec := newTestShoe(t, 1, 100)

	a.NoError(s.Stack(MustCards("As,9d,Kh,7c")...))
	a.Equal(52, s.Remaining())
	a.Empty(rec.seen)

	a.Equal(MustCard("As"), s.Deal())
	a.Equal(MustCard("9d"), s.Deal())
	a.Equal(MustCard("Kh"), s.Deal())
	a.Equal(MustCard("7c"), s.Deal())

	a.ErrorIs(s.Stack(MustCard("As")), ErrCardUnavailable)
	a.ErrorIs(s.Stack(MustCards("2c,2c")...), ErrCardUnavailable)
	a.Equal(48, s.Remaining())
}

func TestShoe_DealFaceDown(t *testing.T) {
	a := assert.New(t)
	s, rec := newTestShoe(t, 1, 100)
	a.Equal(1, s.Generation())

	a.NoError(s.Stack(MustCards("9d,7c")...))
	card, gen := s.DealFaceDown()
	a.Equal(MustCard("9d"), card)
	a.Empty(rec.seen)
	a.Equal(1, s.CardsDealt())

	s.Reveal(card, gen)
	a.Equal([]Card{card}, rec.seen)

	card, gen = s.DealFaceDown()
	s.Reset()
	a.Equal(2, s.Generation())
	s.Reveal(card, gen)
	a.Empty(rec.seen)
}
