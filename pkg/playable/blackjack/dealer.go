package blackjack

import (
	"time"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack/handvalue"

	"github.com/sirupsen/logrus"
)

// dealerStandsOn is the total the dealer stands on, soft or hard
const dealerStandsOn = 17

// startDealerTurn turns over the hole card
// If every player hand is bust or surrendered, the round settles without the dealer drawing
func (g *Game) startDealerTurn() {
	g.revealHoleCard()

	live := false
	for _, hand := range g.round.Hands {
		if !hand.Surrendered && !handvalue.IsBust(hand.Cards) {
			live = true
			break
		}
	}

	if !live {
		g.settle(false)
		return
	}

	g.phase = PhaseDealerTurn
	g.dealerStarted = g.clock.Now()
	g.dealerSteps = 0
	g.sendLogMessage(g.round.Dealer.Clone(), "Dealer reveals %s", g.round.Dealer)
}

func (g *Game) revealHoleCard() {
	r := g.round
	if r.holeCardCounted || len(r.Dealer) < 2 {
		return
	}

	r.holeCardCounted = true
	g.shoe.Reveal(r.Dealer[1], r.holeCardGeneration)
}

// Delay is how long to wait between dealer draws
func (g *Game) Delay() time.Duration {
	return g.options.DealerStepDelay
}

// PendingTick returns true while the dealer is playing
func (g *Game) PendingTick() bool {
	return g.phase == PhaseDealerTurn
}

// Tick advances the dealer turn by a single step: one draw, or settlement once the dealer stands
func (g *Game) Tick() (bool, error) {
	if g.phase != PhaseDealerTurn {
		return false, nil
	}

	if g.watchdogExpired() {
		g.logger.WithFields(logrus.Fields{
			"steps":   g.dealerSteps,
			"elapsed": g.clock.Now().Sub(g.dealerStarted).String(),
			"dealer":  g.round.Dealer.String(),
		}).Error("dealer turn did not finish, forcing settlement")
		g.sendLogMessage(nil, "Dealer turn timed out, round settled as it stands")
		g.settle(true)
		return true, nil
	}

	if handvalue.Total(g.round.Dealer) >= dealerStandsOn {
		g.settle(false)
		return true, nil
	}

	g.dealerDraw(g.shoe.Deal(), "Dealer draws %s")
	return true, nil
}

// dealerDraw adds the dealer's next card and counts it as a dealer step
func (g *Game) dealerDraw(card deck.Card, format string) {
	g.round.Dealer.AddCard(card)
	g.dealerSteps++
	g.sendLogMessage(g.round.Dealer.Clone(), format, card)
}

func (g *Game) watchdogExpired() bool {
	if g.options.MaxDealerSteps > 0 && g.dealerSteps >= g.options.MaxDealerSteps {
		return true
	}

	return g.options.DealerWatchdog > 0 && g.clock.Now().Sub(g.dealerStarted) > g.options.DealerWatchdog
}

// RunDealer ticks until the dealer turn is over
func (g *Game) RunDealer() {
	for g.PendingTick() {
		_, _ = g.Tick()
	}
}
