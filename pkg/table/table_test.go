package table

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	var err error = UserError("nope")

	var ue UserError
	assert.True(t, errors.As(err, &ue))
	assert.EqualError(t, err, "nope")

	assert.True(t, IsUserError(fmt.Errorf("create: %w", ErrInvalidName)))
	assert.False(t, IsUserError(errors.New("connection refused")))
	assert.False(t, IsUserError(nil))
}

func Test_validateName(t *testing.T) {
	a := assert.New(t)

	a.NoError(validateName("Lucky Shoe"))
	a.Equal(UserError("name must be 3-40 characters"), validateName("  ab  "))
	a.Equal(UserError("name must be 3-40 characters"), validateName(strings.Repeat("x", 41)))
}

func TestTable_Snapshot(t *testing.T) {
	tbl := &Table{Balance: 1200, DeckCount: 2, PenetrationPercent: 60}
	assert.Equal(t, blackjack.Snapshot{Balance: 1200, DeckCount: 2, PenetrationPercent: 60}, tbl.Snapshot())
	assert.Equal(t, "", tbl.ID())
}

func createTable(t *testing.T) *Table {
	t.Helper()

	tbl, err := CreateTable(cbg, "test table", blackjack.DefaultSnapshot())
	if err != nil {
		t.Fatal(err)
	}

	return tbl
}

func TestCreateTable(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	tbl, err := CreateTable(cbg, "x", blackjack.DefaultSnapshot())
	a.Nil(tbl)
	a.IsType(UserError(""), err)

	tbl = createTable(t)
	a.NotEmpty(tbl.UUID)
	a.Equal(tbl.UUID, tbl.ID())
	a.Equal("test table", tbl.Name)
	a.Equal(blackjack.DefaultSnapshot(), tbl.Snapshot())
	a.False(tbl.Created.IsZero())
}

func TestGetTableByUUID(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	tbl, err := GetTableByUUID(cbg, uuid.New().String())
	a.Equal(sql.ErrNoRows, err)
	a.Nil(tbl)

	tbl2 := createTable(t)
	tbl, err = GetTableByUUID(cbg, strings.ToUpper(tbl2.UUID))
	a.NoError(err)
	a.Equal(tbl2.Name, tbl.Name)
	a.Equal(tbl2.Snapshot(), tbl.Snapshot())
}

func TestTable_SaveSnapshot(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	tbl := createTable(t)
	snapshot := blackjack.Snapshot{Balance: 750, DeckCount: 2, PenetrationPercent: 50}
	a.NoError(tbl.SaveSnapshot(cbg, snapshot))
	a.Equal(snapshot, tbl.Snapshot())

	tbl2 := &Table{UUID: tbl.UUID}
	a.NoError(tbl2.Reload(cbg))
	a.Equal(snapshot, tbl2.Snapshot())
	a.Equal("test table", tbl2.Name)

	// constraints reject a snapshot the game could not be built from
	a.Error(tbl.SaveSnapshot(cbg, blackjack.Snapshot{Balance: -1, DeckCount: 2, PenetrationPercent: 50}))
	a.Equal(snapshot, tbl.Snapshot())
}

func TestTable_RecordRound(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	tbl := createTable(t)
	count, err := tbl.GetRoundsCount(cbg)
	a.NoError(err)
	a.Equal(int64(0), count)

	result := &blackjack.Settlement{
		Hands: []blackjack.HandResult{{
			Cards:   deck.MustCards("As,Kh"),
			Total:   21,
			Bet:     100,
			Outcome: blackjack.OutcomeBlackjack,
			Payout:  250,
			Net:     150,
			Reason:  "blackjack pays 3:2",
		}},
		Dealer:      deck.MustCards("9d,7c"),
		DealerTotal: 16,
		Net:         150,
	}

	snapshot := blackjack.Snapshot{Balance: 1150, DeckCount: 6, PenetrationPercent: 75}
	a.NoError(tbl.RecordRound(cbg, result, snapshot))
	a.Equal(1150, tbl.Balance)

	a.NoError(tbl.RecordRound(cbg, &blackjack.Settlement{Net: -100}, blackjack.Snapshot{Balance: 1050, DeckCount: 6, PenetrationPercent: 75}))

	count, err = tbl.GetRoundsCount(cbg)
	a.NoError(err)
	a.Equal(int64(2), count)

	rounds, err := tbl.GetRounds(cbg, 0, 10)
	a.NoError(err)
	if a.Len(rounds, 2) {
		a.Equal(-100, rounds[0].Net)
		a.Equal(1050, rounds[0].Balance)
		a.Equal(150, rounds[1].Net)
		a.Equal(result, rounds[1].Result)
	}

	rounds, err = tbl.GetRounds(cbg, 1, 1)
	a.NoError(err)
	a.Len(rounds, 1)

	round, err := RoundByID(cbg, rounds[0].ID)
	a.NoError(err)
	a.Equal(tbl.UUID, round.TableUUID)
	a.Equal(1150, round.Balance)

	tbl2, _ := GetTableByUUID(cbg, tbl.UUID)
	a.Equal(1050, tbl2.Balance)
}
