package gamefactory

import (
	"testing"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestBlackjack_CreateGame(t *testing.T) {
	a := assert.New(t)

	game, err := New().CreateGame(logrus.StandardLogger(), blackjack.DefaultSnapshot())
	a.NoError(err)
	a.IsType(&blackjack.Game{}, game)
	a.Equal("Blackjack (6 decks)", game.Name())

	factory := New()
	factory.CryptoShuffle = true
	game, err = factory.CreateGame(logrus.StandardLogger(), blackjack.Snapshot{Balance: 500, DeckCount: 2, PenetrationPercent: 50})
	a.NoError(err)
	a.Equal(blackjack.Snapshot{Balance: 500, DeckCount: 2, PenetrationPercent: 50}, game.Snapshot())

	game, err = factory.CreateGame(logrus.StandardLogger(), blackjack.Snapshot{Balance: 500, DeckCount: 0, PenetrationPercent: 50})
	a.Nil(game)
	a.ErrorIs(err, deck.ErrConfiguration)
}

func TestBlackjack_Details(t *testing.T) {
	a := assert.New(t)

	snapshot, err := New().Details(playable.AdditionalData{})
	a.NoError(err)
	a.Equal(blackjack.DefaultSnapshot(), snapshot)

	snapshot, err = New().Details(playable.AdditionalData{
		"balance":            float64(2500),
		"deckCount":          float64(8),
		"penetrationPercent": 80.5,
	})
	a.NoError(err)
	a.Equal(blackjack.Snapshot{Balance: 2500, DeckCount: 8, PenetrationPercent: 80.5}, snapshot)

	_, err = New().Details(playable.AdditionalData{"balance": float64(-1)})
	a.EqualError(err, "balance cannot be negative, got -1")

	_, err = New().Details(playable.AdditionalData{"penetrationPercent": float64(0)})
	a.ErrorIs(err, deck.ErrConfiguration)
}
