package blackjack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
)

// Action is an action the player can take
type Action int

// MarshalJSON encodes the JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Name: a.String(),
	})
}

// Action constants
const (
	ActionBet Action = iota
	ActionHit
	ActionStand
	ActionDouble
	ActionSplit
	ActionInsurance
	ActionSurrender
	ActionConfigure
	ActionAddCard
	ActionBurnCard
)

var actionNames = map[Action]string{
	ActionBet:       "bet",
	ActionHit:       "hit",
	ActionStand:     "stand",
	ActionDouble:    "double",
	ActionSplit:     "split",
	ActionInsurance: "insurance",
	ActionSurrender: "surrender",
	ActionConfigure: "configure",
	ActionAddCard:   "add-card",
	ActionBurnCard:  "burn-card",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	panic(fmt.Sprintf("invalid action: %d", a))
}

// ActionFromString returns an action from its name or a string integer
func ActionFromString(action string) (Action, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	for a, name := range actionNames {
		if name == action {
			return a, nil
		}
	}

	actionInt, err := strconv.Atoi(action)
	if err == nil && actionInt >= int(ActionBet) && actionInt <= int(ActionBurnCard) {
		return Action(actionInt), nil
	}

	return -1, fmt.Errorf("%w: %q", ErrInvalidAction, action)
}

// availableActions returns the round actions that are legal right now
// Out-of-band actions (configure, add-card, burn-card) are not listed
func (g *Game) availableActions() []Action {
	switch g.phase {
	case PhaseIdle:
		if g.balance >= g.options.MinBet {
			return []Action{ActionBet}
		}

		return []Action{}
	case PhasePlayerTurn:
		hand := g.round.activeHand()
		actions := []Action{ActionHit, ActionStand}
		if g.canDouble(hand) {
			actions = append(actions, ActionDouble)
		}

		if g.canSplit(hand) {
			actions = append(actions, ActionSplit)
		}

		if g.canInsure(hand) {
			actions = append(actions, ActionInsurance)
		}

		if g.canSurrender(hand) {
			actions = append(actions, ActionSurrender)
		}

		return actions
	}

	return []Action{}
}

// Action performs with a message
// Rejected actions leave the game untouched and report why
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	action, err := ActionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	if err := g.perform(action, message); err != nil {
		g.logger.WithError(err).WithField("action", action.String()).Debug("action rejected")
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}

func (g *Game) perform(action Action, message *playable.PayloadIn) error {
	switch action {
	case ActionBet:
		amount, ok := message.AdditionalData.GetInt("amount")
		if !ok {
			return fmt.Errorf("%w: amount is required", ErrInvalidBet)
		}

		return g.PlaceBet(amount)
	case ActionHit:
		return g.Hit()
	case ActionStand:
		return g.Stand()
	case ActionDouble:
		return g.Double()
	case ActionSplit:
		return g.Split()
	case ActionInsurance:
		return g.Insurance()
	case ActionSurrender:
		return g.Surrender()
	case ActionConfigure:
		decks, ok := message.AdditionalData.GetInt("decks")
		if !ok {
			return fmt.Errorf("%w: decks is required", ErrConfiguration)
		}

		penetration, ok := message.AdditionalData.GetFloat("penetration")
		if !ok {
			return fmt.Errorf("%w: penetration is required", ErrConfiguration)
		}

		return g.ConfigureShoe(decks, penetration)
	case ActionAddCard:
		card, err := singleCard(message)
		if err != nil {
			return err
		}

		target, _ := message.AdditionalData.GetString("target")
		if target == "" {
			target = string(TargetPlayer)
		}

		return g.ManualAddCard(card.Rank, card.Suit, Target(target))
	case ActionBurnCard:
		card, err := singleCard(message)
		if err != nil {
			return err
		}

		return g.ManualBurnCard(card.Rank, card.Suit)
	}

	return fmt.Errorf("%w: %s", ErrInvalidAction, action)
}

// singleCard returns the card from the payload, either from cards or from additionalData.card
func singleCard(message *playable.PayloadIn) (deck.Card, error) {
	if len(message.Cards) == 1 {
		return message.Cards[0], nil
	}

	if s, ok := message.AdditionalData.GetString("card"); ok {
		return deck.CardFromString(s)
	}

	return deck.Card{}, fmt.Errorf("%w: exactly one card is required", ErrInvalidAction)
}

// GetState returns the current state of the game
func (g *Game) GetState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.State(),
	}, nil
}

// IsUserError returns true if the error is a rejection the player can act on
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidBet) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrRoundInProgress) ||
		errors.Is(err, ErrCardUnavailable) ||
		errors.Is(err, ErrConfiguration) ||
		errors.Is(err, deck.ErrInvalidCard)
}
