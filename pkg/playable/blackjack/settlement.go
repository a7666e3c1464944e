package blackjack

import (
	"fmt"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack/handvalue"

	"github.com/sirupsen/logrus"
)

// Outcome is the result of a single hand
type Outcome string

// Outcome constants
const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomePush      Outcome = "push"
	OutcomeLose      Outcome = "lose"
	OutcomeSurrender Outcome = "surrender"
)

// HandResult is the settlement of a single player hand
type HandResult struct {
	Cards   deck.Hand `json:"cards"`
	Total   int       `json:"total"`
	Bet     int       `json:"bet"`
	Outcome Outcome   `json:"outcome"`
	// Payout is everything returned to the balance, including the original bet
	Payout int    `json:"payout"`
	Net    int    `json:"net"`
	Reason string `json:"reason"`
}

// Settlement is the result of a completed round
type Settlement struct {
	Hands        []HandResult `json:"hands"`
	Dealer       deck.Hand    `json:"dealer"`
	DealerTotal  int          `json:"dealerTotal"`
	Insurance    int          `json:"insurance"`
	InsuranceNet int          `json:"insuranceNet"`
	Net          int          `json:"net"`

	// Forced is true if the watchdog ended the dealer turn
	Forced bool `json:"forced"`
}

// settle pays out every hand and returns to idle
func (g *Game) settle(forced bool) {
	g.phase = PhaseSettlement
	g.revealHoleCard()

	r := g.round
	dealerTotal := handvalue.Total(r.Dealer)
	dealerBlackjack := handvalue.IsBlackjack(r.Dealer)

	result := &Settlement{
		Dealer:      r.Dealer.Clone(),
		DealerTotal: dealerTotal,
		Insurance:   r.Insurance,
		Forced:      forced,
	}

	if r.Insurance > 0 {
		if dealerBlackjack {
			g.balance += r.Insurance * 3
			result.InsuranceNet = r.Insurance * 2
		} else {
			result.InsuranceNet = -r.Insurance
		}
	}

	result.Net = result.InsuranceNet
	for _, hand := range r.Hands {
		hr := settleHand(hand, r.Split, dealerTotal, dealerBlackjack)
		g.balance += hr.Payout
		result.Net += hr.Net
		result.Hands = append(result.Hands, hr)
	}

	g.logger.WithFields(logrus.Fields{
		"net":     result.Net,
		"balance": g.balance,
		"dealer":  result.Dealer.String(),
		"forced":  forced,
	}).Info("round settled")

	for i, hr := range result.Hands {
		g.sendLogMessage(hr.Cards, "Hand %d: %s (%+d)", i+1, hr.Reason, hr.Net)
	}

	g.lastResult = result
	g.round = nil
	g.phase = PhaseIdle
}

func settleHand(hand *PlayerHand, split bool, dealerTotal int, dealerBlackjack bool) HandResult {
	total := handvalue.Total(hand.Cards)
	bet := hand.Bet

	// 21 on a split hand is not a natural
	playerBlackjack := !split && handvalue.IsBlackjack(hand.Cards)

	hr := HandResult{
		Cards: hand.Cards.Clone(),
		Total: total,
		Bet:   bet,
	}

	switch {
	case hand.Surrendered:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeSurrender, bet/2, "surrendered"
	case playerBlackjack && dealerBlackjack:
		hr.Outcome, hr.Payout, hr.Reason = OutcomePush, bet, "both have blackjack"
	case playerBlackjack:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeBlackjack, bet+bet*3/2, "blackjack pays 3:2"
	case dealerBlackjack:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeLose, 0, "dealer has blackjack"
	case total > handvalue.Blackjack:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeLose, 0, fmt.Sprintf("busted with %d", total)
	case dealerTotal > handvalue.Blackjack:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeWin, bet*2, fmt.Sprintf("dealer busted with %d", dealerTotal)
	case total > dealerTotal:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeWin, bet*2, fmt.Sprintf("%d beats dealer %d", total, dealerTotal)
	case total < dealerTotal:
		hr.Outcome, hr.Payout, hr.Reason = OutcomeLose, 0, fmt.Sprintf("dealer %d beats %d", dealerTotal, total)
	default:
		hr.Outcome, hr.Payout, hr.Reason = OutcomePush, bet, fmt.Sprintf("push at %d", total)
	}

	hr.Net = hr.Payout - bet
	return hr
}
