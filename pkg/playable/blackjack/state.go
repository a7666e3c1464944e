package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/hilo"
	"blackjack-server/pkg/playable/blackjack/handvalue"
	"blackjack-server/pkg/playable/blackjack/strategy"
)

// HandState is a hand as shown to the player
type HandState struct {
	Cards       deck.Hand `json:"cards"`
	Total       int       `json:"total"`
	Soft        bool      `json:"soft"`
	Bet         int       `json:"bet,omitempty"`
	HasActed    bool      `json:"hasActed,omitempty"`
	Doubled     bool      `json:"doubled,omitempty"`
	HiddenCards int       `json:"hiddenCards,omitempty"`
}

// ShoeState describes the shoe
type ShoeState struct {
	Decks              int     `json:"decks"`
	PenetrationPercent float64 `json:"penetrationPercent"`
	PenetrationLimit   int     `json:"penetrationLimit"`
	Remaining          int     `json:"remaining"`
	CardsDealt         int     `json:"cardsDealt"`
	CardsLeftBeforeCut int     `json:"cardsLeftBeforeCut"`
}

// GameState is the current state of the game
type GameState struct {
	Phase                 Phase            `json:"phase"`
	DealerHoleCardVisible bool             `json:"dealerHoleCardVisible"`
	Dealer                *HandState       `json:"dealer"`
	Hands                 []*HandState     `json:"hands"`
	ActiveHand            int              `json:"activeHand"`
	Insurance             int              `json:"insurance"`
	Balance               int              `json:"balance"`
	MinBet                int              `json:"minBet"`
	RunningCount          int              `json:"runningCount"`
	TrueCount             int              `json:"trueCount"`
	DecksRemaining        float64          `json:"decksRemaining"`
	Advice                *strategy.Advice `json:"advice"`
	RecommendedBet        int              `json:"recommendedBet"`
	History               []hilo.Entry     `json:"history"`
	Shoe                  ShoeState        `json:"shoe"`
	LastResult            *Settlement      `json:"lastResult"`
	Actions               []Action         `json:"actions"`
}

// State returns the game state that is safe to show to the player
// The dealer's hole card is omitted until the dealer turn
func (g *Game) State() *GameState {
	remaining := g.shoe.Remaining()
	trueCount := g.counter.TrueCount(remaining)

	state := &GameState{
		Phase:                 g.phase,
		DealerHoleCardVisible: g.phase.IsDealerHoleCardVisible(),
		Hands:                 []*HandState{},
		Balance:               g.balance,
		MinBet:                g.options.MinBet,
		RunningCount:          g.counter.RunningCount(),
		TrueCount:             trueCount,
		DecksRemaining:        hilo.DecksRemaining(remaining),
		RecommendedBet:        strategy.RecommendedBet(trueCount, g.options.MinBet, g.balance),
		History:               g.counter.History(),
		Shoe: ShoeState{
			Decks:              g.shoe.Decks(),
			PenetrationPercent: g.shoe.PenetrationPercent(),
			PenetrationLimit:   g.shoe.PenetrationLimit(),
			Remaining:          remaining,
			CardsDealt:         g.shoe.CardsDealt(),
			CardsLeftBeforeCut: g.shoe.CardsLeftBeforeCut(),
		},
		LastResult: g.lastResult,
		Actions:    g.availableActions(),
	}

	r := g.round
	if r == nil {
		return state
	}

	state.Dealer = g.dealerState()
	state.ActiveHand = r.ActiveHand
	state.Insurance = r.Insurance
	for _, hand := range r.Hands {
		v := handvalue.Evaluate(hand.Cards)
		state.Hands = append(state.Hands, &HandState{
			Cards:    hand.Cards.Clone(),
			Total:    v.Total,
			Soft:     v.Soft,
			Bet:      hand.Bet,
			HasActed: hand.HasActed,
			Doubled:  hand.Doubled,
		})
	}

	if g.phase == PhasePlayerTurn {
		advice := g.Advice()
		state.Advice = &advice
	}

	return state
}

func (g *Game) dealerState() *HandState {
	dealer := g.round.Dealer
	if g.phase.IsDealerHoleCardVisible() || len(dealer) < 2 {
		v := handvalue.Evaluate(dealer)
		return &HandState{Cards: dealer.Clone(), Total: v.Total, Soft: v.Soft}
	}

	visible := make(deck.Hand, 0, len(dealer)-1)
	visible = append(visible, dealer[0])
	visible = append(visible, dealer[2:]...)

	v := handvalue.Evaluate(visible)
	return &HandState{
		Cards:       visible,
		Total:       v.Total,
		Soft:        v.Soft,
		HiddenCards: 1,
	}
}

// Advice returns the recommended play for the active hand
// Outside of the player's turn, an empty advice is returned
func (g *Game) Advice() strategy.Advice {
	if g.phase != PhasePlayerTurn {
		return strategy.Advice{}
	}

	hand := g.round.activeHand()
	return strategy.Recommend(hand.Cards, g.round.Dealer[0], g.counter.RunningCount(), g.canDouble(hand), g.canSplit(hand))
}

// RecommendedBet returns the bet size for the current true count
func (g *Game) RecommendedBet() int {
	return strategy.RecommendedBet(g.TrueCount(), g.options.MinBet, g.balance)
}
