package strategy

// BetUnit is the chip size recommended bets are rounded down to
const BetUnit = 50

// betSpread is the multiple of the minimum bet for each true count, starting at zero
var betSpread = []int{1, 2, 6, 10, 20, 24, 30, 50}

// BetMultiple returns the bet spread multiple for the true count
func BetMultiple(trueCount int) int {
	if trueCount <= 0 {
		return betSpread[0]
	}

	if trueCount >= len(betSpread)-1 {
		return betSpread[len(betSpread)-1]
	}

	return betSpread[trueCount]
}

// RecommendedBet returns the bet for the true count
// The bet is capped at balance, rounded down to the nearest BetUnit, and never less than minBet
func RecommendedBet(trueCount, minBet, balance int) int {
	bet := BetMultiple(trueCount) * minBet
	if bet > balance {
		bet = balance
	}

	bet -= bet % BetUnit
	if bet < minBet {
		bet = minBet
	}

	return bet
}
