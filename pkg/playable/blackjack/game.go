package blackjack

import (
	"fmt"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/hilo"
	"blackjack-server/pkg/playable"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

// Game is a single-seat game of blackjack against the dealer
// Game is not safe for concurrent use; callers must serialize access
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
	clock   quartz.Clock

	shoe    *deck.Shoe
	counter *hilo.Counter
	balance int

	phase      Phase
	round      *Round
	lastResult *Settlement

	dealerStarted time.Time
	dealerSteps   int
}

// NewGame returns a new game built from the snapshot
func NewGame(logger logrus.FieldLogger, snapshot Snapshot, options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	if snapshot.Balance < 0 {
		return nil, fmt.Errorf("balance cannot be negative, got %d", snapshot.Balance)
	}

	if options.RNG == nil {
		options.RNG = rng.New(false)
	}

	if options.Clock == nil {
		options.Clock = quartz.NewReal()
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	counter := hilo.NewCounter()
	shoe, err := deck.NewShoe(snapshot.DeckCount, snapshot.PenetrationPercent, options.RNG, counter)
	if err != nil {
		return nil, err
	}

	return &Game{
		options: options,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
		clock:   options.Clock,
		shoe:    shoe,
		counter: counter,
		balance: snapshot.Balance,
		phase:   PhaseIdle,
	}, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return fmt.Sprintf("Blackjack (%d decks)", g.shoe.Decks())
}

// Key returns a unique key
func (g *Game) Key() string {
	return "blackjack"
}

// Snapshot returns the persistent state of the game
// Wagers still in play are returned to the balance, since an unfinished round is not restored
func (g *Game) Snapshot() Snapshot {
	balance := g.balance
	if g.round != nil {
		balance += g.round.wagered()
	}

	return Snapshot{
		Balance:            balance,
		DeckCount:          g.shoe.Decks(),
		PenetrationPercent: g.shoe.PenetrationPercent(),
	}
}

// Balance returns the current balance, excluding wagers in play
func (g *Game) Balance() int {
	return g.balance
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// LastResult returns the most recent settlement, or nil if a round is in progress
func (g *Game) LastResult() *Settlement {
	return g.lastResult
}

// RunningCount returns the Hi-Lo running count
func (g *Game) RunningCount() int {
	return g.counter.RunningCount()
}

// TrueCount returns the Hi-Lo true count
func (g *Game) TrueCount() int {
	return g.counter.TrueCount(g.shoe.Remaining())
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// ConfigureShoe replaces the shoe with a freshly shuffled one
// On error, the previous configuration is retained
func (g *Game) ConfigureShoe(decks int, penetrationPercent float64) error {
	if g.phase != PhaseIdle {
		return fmt.Errorf("%w: cannot configure the shoe from phase %s", ErrRoundInProgress, g.phase)
	}

	if err := g.shoe.Build(decks, penetrationPercent); err != nil {
		return err
	}

	g.logger.WithFields(logrus.Fields{
		"decks":       decks,
		"penetration": penetrationPercent,
	}).Info("shoe configured")
	g.sendLogMessage(nil, "Shoe configured with %d decks at %v%% penetration", decks, penetrationPercent)
	return nil
}

// StackShoe arranges the next cards to be dealt in the order given
// Player and dealer alternate on the initial deal: player, dealer, player, dealer
func (g *Game) StackShoe(cards ...deck.Card) error {
	if g.phase != PhaseIdle {
		return fmt.Errorf("%w: cannot stack the shoe from phase %s", ErrRoundInProgress, g.phase)
	}

	if g.shoe.NeedsReshuffle(g.options.CutCardBuffer) {
		g.reshuffle()
	}

	return g.shoe.Stack(cards...)
}

// ManualBurnCard removes a card from the shoe and counts it without placing it in a hand
func (g *Game) ManualBurnCard(rank deck.Rank, suit deck.Suit) error {
	if !rank.Valid() {
		return fmt.Errorf("%w: unknown rank", ErrInvalidAction)
	}

	if !g.shoe.RemoveSpecific(rank, suit) {
		return fmt.Errorf("%w: %s", ErrCardUnavailable, deck.Card{Rank: rank, Suit: suit})
	}

	card := deck.Card{Rank: rank, Suit: suit}
	g.sendLogMessage([]deck.Card{card}, "Burned card")
	return nil
}

func (g *Game) reshuffle() {
	g.shoe.Reset()
	g.logger.WithField("decks", g.shoe.Decks()).Info("reshuffled shoe")
	g.sendLogMessage(nil, "Cut card reached, shoe reshuffled")
}

func (g *Game) sendLogMessage(cards []deck.Card, format string, a ...interface{}) {
	select {
	case g.logChan <- playable.SimpleLogMessageSlice(cards, format, a...):
	default:
		g.logger.WithField("message", fmt.Sprintf(format, a...)).Debug("log channel is full, dropping message")
	}
}
