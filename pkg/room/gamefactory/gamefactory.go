package gamefactory

import (
	"fmt"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"

	"github.com/sirupsen/logrus"
)

// Blackjack is a factory for creating blackjack games with the table options
type Blackjack struct {
	Options       blackjack.Options
	Defaults      blackjack.Snapshot
	CryptoShuffle bool
}

var _ room.GameFactory = Blackjack{}

// New returns a factory with the default options
func New() Blackjack {
	return Blackjack{
		Options:  blackjack.DefaultOptions(),
		Defaults: blackjack.DefaultSnapshot(),
	}
}

// CreateGame creates a new game from the snapshot
func (b Blackjack) CreateGame(logger logrus.FieldLogger, snapshot blackjack.Snapshot) (room.Game, error) {
	opts := b.Options
	opts.RNG = rng.New(b.CryptoShuffle)

	game, err := blackjack.NewGame(logger, snapshot, opts)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// Details returns the snapshot for a new table, filling in defaults for anything not provided
func (b Blackjack) Details(additionalData playable.AdditionalData) (blackjack.Snapshot, error) {
	snapshot := b.Defaults
	if balance, ok := additionalData.GetInt("balance"); ok {
		snapshot.Balance = balance
	}

	if decks, ok := additionalData.GetInt("deckCount"); ok {
		snapshot.DeckCount = decks
	}

	if pct, ok := additionalData.GetFloat("penetrationPercent"); ok {
		snapshot.PenetrationPercent = pct
	}

	if snapshot.Balance < 0 {
		return blackjack.Snapshot{}, fmt.Errorf("balance cannot be negative, got %d", snapshot.Balance)
	}

	if err := deck.ValidateConfiguration(snapshot.DeckCount, snapshot.PenetrationPercent); err != nil {
		return blackjack.Snapshot{}, err
	}

	return snapshot, nil
}
