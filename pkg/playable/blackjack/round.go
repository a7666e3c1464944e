package blackjack

import (
	"fmt"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack/handvalue"

	"github.com/sirupsen/logrus"
)

// Target is who receives a manually entered card
type Target string

// Target constants
const (
	TargetPlayer Target = "player"
	TargetDealer Target = "dealer"
)

// PlayerHand is one of the player's hands
type PlayerHand struct {
	Cards       deck.Hand
	Bet         int
	HasActed    bool
	Doubled     bool
	Surrendered bool
}

// Round is the state of a single round
type Round struct {
	Dealer     deck.Hand
	Hands      []*PlayerHand
	ActiveHand int
	Insurance  int
	Split      bool

	// insuranceOpen is true while the dealer shows an ace and has not checked for blackjack
	insuranceOpen bool

	holeCardGeneration int
	holeCardCounted    bool
}

func newRound(bet int) *Round {
	return &Round{
		Hands: []*PlayerHand{{Bet: bet}},
	}
}

// wagered returns every chip the player has in play
func (r *Round) wagered() int {
	total := r.Insurance
	for _, hand := range r.Hands {
		total += hand.Bet
	}

	return total
}

func (r *Round) activeHand() *PlayerHand {
	return r.Hands[r.ActiveHand]
}

// PlaceBet debits the bet and deals a new round
func (g *Game) PlaceBet(amount int) error {
	if g.phase != PhaseIdle {
		return fmt.Errorf("%w: cannot bet from phase %s", ErrRoundInProgress, g.phase)
	}

	if amount < g.options.MinBet {
		return fmt.Errorf("%w: bet of $%d is below the minimum of $%d", ErrInvalidBet, amount, g.options.MinBet)
	}

	if amount > g.balance {
		return fmt.Errorf("%w: bet of $%d exceeds the balance of $%d", ErrInvalidBet, amount, g.balance)
	}

	if g.shoe.NeedsReshuffle(g.options.CutCardBuffer) {
		g.reshuffle()
	}

	g.balance -= amount
	g.lastResult = nil
	g.round = newRound(amount)
	g.phase = PhaseDealing

	r := g.round
	player := r.activeHand()
	player.Cards.AddCard(g.shoe.Deal())
	r.Dealer.AddCard(g.shoe.Deal())
	player.Cards.AddCard(g.shoe.Deal())

	hole, generation := g.shoe.DealFaceDown()
	r.Dealer.AddCard(hole)
	r.holeCardGeneration = generation

	g.logger.WithFields(logrus.Fields{
		"bet":     amount,
		"player":  player.Cards.String(),
		"dealer":  r.Dealer[0].String(),
		"running": g.counter.RunningCount(),
	}).Debug("dealt round")
	g.sendLogMessage(player.Cards.Clone(), "Bet $%d, dealer shows %s", amount, r.Dealer[0])

	playerBlackjack := handvalue.IsBlackjack(player.Cards)
	dealerBlackjack := handvalue.IsBlackjack(r.Dealer)
	upCard := r.Dealer[0]

	if playerBlackjack || (dealerBlackjack && upCard.Rank != deck.Ace) {
		g.settle(false)
		return nil
	}

	g.phase = PhasePlayerTurn
	r.insuranceOpen = upCard.Rank == deck.Ace
	return nil
}

// activeHand returns the hand the player is acting on
func (g *Game) activeHand() (*PlayerHand, error) {
	if g.phase != PhasePlayerTurn {
		return nil, fmt.Errorf("%w: it is not the player's turn", ErrInvalidAction)
	}

	return g.round.activeHand(), nil
}

// checkDealerBlackjack closes the insurance window
// Returns true if the dealer had blackjack and the round is over
func (g *Game) checkDealerBlackjack() bool {
	r := g.round
	if !r.insuranceOpen {
		return false
	}

	r.insuranceOpen = false
	if handvalue.IsBlackjack(r.Dealer) {
		g.sendLogMessage(nil, "Dealer has blackjack")
		g.settle(false)
		return true
	}

	g.sendLogMessage(nil, "Dealer does not have blackjack")
	return false
}

// Hit deals another card to the active hand
func (g *Game) Hit() error {
	hand, err := g.activeHand()
	if err != nil {
		return err
	}

	if g.checkDealerBlackjack() {
		return nil
	}

	g.dealToPlayer(hand, g.shoe.Deal())
	return nil
}

func (g *Game) dealToPlayer(hand *PlayerHand, card deck.Card) {
	hand.Cards.AddCard(card)
	hand.HasActed = true
	g.sendLogMessage([]deck.Card{card}, "Hand %d drew %s", g.round.ActiveHand+1, card)

	if handvalue.Total(hand.Cards) >= handvalue.Blackjack {
		g.advance()
	}
}

// Stand ends play on the active hand
func (g *Game) Stand() error {
	if _, err := g.activeHand(); err != nil {
		return err
	}

	if g.checkDealerBlackjack() {
		return nil
	}

	g.advance()
	return nil
}

func (g *Game) canDouble(hand *PlayerHand) bool {
	return len(hand.Cards) == 2 && !hand.HasActed && g.balance >= hand.Bet
}

// Double doubles the bet on the active hand, deals exactly one card, and ends play on the hand
func (g *Game) Double() error {
	hand, err := g.activeHand()
	if err != nil {
		return err
	}

	if !g.canDouble(hand) {
		return fmt.Errorf("%w: cannot double this hand", ErrInvalidAction)
	}

	if g.checkDealerBlackjack() {
		return nil
	}

	g.balance -= hand.Bet
	hand.Bet *= 2
	hand.Doubled = true
	hand.HasActed = true

	card := g.shoe.Deal()
	hand.Cards.AddCard(card)
	g.sendLogMessage([]deck.Card{card}, "Hand %d doubled to $%d", g.round.ActiveHand+1, hand.Bet)

	g.advance()
	return nil
}

func (g *Game) canSplit(hand *PlayerHand) bool {
	return g.round.ActiveHand == 0 && handvalue.CanSplit(hand.Cards, g.round.Split, hand.HasActed, g.balance, hand.Bet)
}

// Split splits a pair into two hands, each with the original bet
func (g *Game) Split() error {
	hand, err := g.activeHand()
	if err != nil {
		return err
	}

	if !g.canSplit(hand) {
		return fmt.Errorf("%w: cannot split this hand", ErrInvalidAction)
	}

	if g.checkDealerBlackjack() {
		return nil
	}

	r := g.round
	g.balance -= hand.Bet
	second := &PlayerHand{
		Cards: deck.Hand{hand.Cards[1]},
		Bet:   hand.Bet,
	}

	hand.Cards = deck.Hand{hand.Cards[0]}
	r.Hands = append(r.Hands, second)
	r.Split = true

	hand.Cards.AddCard(g.shoe.Deal())
	second.Cards.AddCard(g.shoe.Deal())
	g.sendLogMessage(nil, "Split into %s and %s", hand.Cards, second.Cards)

	if handvalue.Total(hand.Cards) == handvalue.Blackjack {
		g.advance()
	}

	return nil
}

func (g *Game) canInsure(hand *PlayerHand) bool {
	r := g.round
	amount := hand.Bet / 2

	return r.insuranceOpen &&
		r.Dealer[0].Rank == deck.Ace &&
		!r.Split &&
		r.ActiveHand == 0 &&
		!hand.HasActed &&
		r.Insurance == 0 &&
		amount > 0 &&
		g.balance >= amount
}

// Insurance places an insurance bet of half the main bet
// The dealer checks for blackjack immediately after
func (g *Game) Insurance() error {
	hand, err := g.activeHand()
	if err != nil {
		return err
	}

	if !g.canInsure(hand) {
		return fmt.Errorf("%w: insurance is not available", ErrInvalidAction)
	}

	amount := hand.Bet / 2
	g.balance -= amount
	g.round.Insurance = amount
	g.sendLogMessage(nil, "Insurance of $%d placed", amount)

	g.checkDealerBlackjack()
	return nil
}

func (g *Game) canSurrender(hand *PlayerHand) bool {
	return len(hand.Cards) == 2 && !hand.HasActed && !g.round.Split && g.round.ActiveHand == 0
}

// Surrender forfeits half the bet and ends the round
func (g *Game) Surrender() error {
	hand, err := g.activeHand()
	if err != nil {
		return err
	}

	if !g.canSurrender(hand) {
		return fmt.Errorf("%w: cannot surrender this hand", ErrInvalidAction)
	}

	if g.checkDealerBlackjack() {
		return nil
	}

	hand.Surrendered = true
	hand.HasActed = true
	g.sendLogMessage(nil, "Surrendered")
	g.settle(false)
	return nil
}

// ManualAddCard takes a specific card out of the shoe and places it in a hand
// A card added to the player goes to the active hand and plays like a hit
// A card added to the dealer is the dealer's next draw, so it is only allowed during the dealer turn
func (g *Game) ManualAddCard(rank deck.Rank, suit deck.Suit, target Target) error {
	card := deck.Card{Rank: rank, Suit: suit}

	switch target {
	case TargetPlayer:
		hand, err := g.activeHand()
		if err != nil {
			return err
		}

		if err := g.checkAvailable(card); err != nil {
			return err
		}

		if g.checkDealerBlackjack() {
			return nil
		}

		g.shoe.RemoveSpecific(rank, suit)
		g.dealToPlayer(hand, card)
		return nil
	case TargetDealer:
		if g.phase != PhaseDealerTurn {
			return fmt.Errorf("%w: the dealer only draws during the dealer turn", ErrInvalidAction)
		}

		if total := handvalue.Total(g.round.Dealer); total >= dealerStandsOn {
			return fmt.Errorf("%w: the dealer stands on %d", ErrInvalidAction, total)
		}

		if err := g.checkAvailable(card); err != nil {
			return err
		}

		g.shoe.RemoveSpecific(rank, suit)
		g.dealerDraw(card, "Dealer was given %s")
		return nil
	default:
		return fmt.Errorf("%w: unknown target %q", ErrInvalidAction, target)
	}
}

func (g *Game) checkAvailable(card deck.Card) error {
	if !card.Rank.Valid() || g.shoe.Count(card.Rank, card.Suit) == 0 {
		return fmt.Errorf("%w: %s", ErrCardUnavailable, card)
	}

	return nil
}

// advance moves to the next hand that still needs a decision, or to the dealer
func (g *Game) advance() {
	r := g.round
	for r.ActiveHand+1 < len(r.Hands) {
		r.ActiveHand++
		if handvalue.Total(r.activeHand().Cards) < handvalue.Blackjack {
			return
		}
	}

	g.startDealerTurn()
}
