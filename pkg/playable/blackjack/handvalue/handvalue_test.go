package handvalue

import (
	"testing"

	"blackjack-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	test := func(cards string, total int, soft bool) {
		t.Helper()
		v := Evaluate(deck.MustCards(cards))
		assert.Equal(t, total, v.Total, cards)
		assert.Equal(t, soft, v.Soft, cards)
	}

	test("", 0, false)
	test("As,9d", 20, true)
	test("9d,As", 20, true)
	test("Ks,Qh", 20, false)
	test("As,Kh", 21, true)
	test("As,Ah", 12, true)
	test("As,Ah,Ad,9c", 12, false)
	test("As,Ah,Ad,8c", 21, true)
	test("As,6h,Kd", 17, false)
	test("As,6h", 17, true)
	test("10s,6h,9d", 25, false)
	test("As,Ah,Ad,Ac,7d", 21, true)
	test("5s,As,As,Kc", 17, false)
}

func TestTotal_orderInvariant(t *testing.T) {
	a := assert.New(t)
	cards := deck.MustCards("As,Ah,5d,9c")
	expects := Total(cards)
	a.Equal(16, expects)

	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}, {1, 3, 0, 2}}
	for _, perm := range perms {
		reordered := make([]deck.Card, len(cards))
		for i, idx := range perm {
			reordered[i] = cards[idx]
		}

		a.Equal(expects, Total(reordered))
	}
}

func TestIsBlackjack(t *testing.T) {
	a := assert.New(t)
	a.True(IsBlackjack(deck.MustCards("As,Kh")))
	a.True(IsBlackjack(deck.MustCards("10c,Ad")))
	a.False(IsBlackjack(deck.MustCards("7c,7d,7h")))
	a.False(IsBlackjack(deck.MustCards("As,9d")))
}

func TestIsBust(t *testing.T) {
	a := assert.New(t)
	a.True(IsBust(deck.MustCards("Ks,Qs,2c")))
	a.False(IsBust(deck.MustCards("Ks,Qs,Ac")))
	a.False(IsBust(deck.MustCards("As,As,As")))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "soft 17", Evaluate(deck.MustCards("As,6d")).String())
	assert.Equal(t, "hard 12", Evaluate(deck.MustCards("10s,2d")).String())
}

func TestCanSplit(t *testing.T) {
	a := assert.New(t)

	a.True(CanSplit(deck.MustCards("8s,8d"), false, false, 100, 100))
	a.True(CanSplit(deck.MustCards("10s,Kd"), false, false, 100, 100))
	a.True(CanSplit(deck.MustCards("Js,Qd"), false, false, 100, 100))
	a.False(CanSplit(deck.MustCards("9s,8d"), false, false, 100, 100))
	a.False(CanSplit(deck.MustCards("8s,8d"), true, false, 100, 100))
	a.False(CanSplit(deck.MustCards("8s,8d"), false, true, 100, 100))
	a.False(CanSplit(deck.MustCards("8s,8d"), false, false, 99, 100))
	a.False(CanSplit(deck.MustCards("8s,8d,8h"), false, false, 100, 100))
	a.False(CanSplit(deck.MustCards("As,10d"), false, false, 100, 100))
}
