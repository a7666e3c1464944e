package mux

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/table"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func gameAction(subject string, data playable.AdditionalData) playable.PayloadIn {
	return playable.PayloadIn{
		Action:         "game",
		Subject:        subject,
		AdditionalData: data,
	}
}

type testState struct {
	Phase      string          `json:"phase"`
	Balance    int             `json:"balance"`
	LastResult json.RawMessage `json:"lastResult"`
}

type testActionResponse struct {
	Response *playable.Response `json:"response"`
	State    testState          `json:"state"`
}

func Test_postTable(t *testing.T) {
	requireDB(t)
	a := assert.New(t)
	ts := newTestServer(t)

	var tbl *table.Table
	assertPost(t, ts, "/table", map[string]interface{}{
		"name":      "Test",
		"balance":   500,
		"deckCount": 2,
	}, &tbl, 201)
	a.Equal("Test", tbl.Name)
	a.NotEmpty(tbl.UUID)
	a.Equal(500, tbl.Balance)
	a.Equal(2, tbl.DeckCount)
	a.Equal(75.0, tbl.PenetrationPercent)

	// random name
	tbl = nil
	assertPost(t, ts, "/table", map[string]interface{}{}, &tbl, 201)
	a.NotEmpty(tbl.Name)
	a.Equal(1000, tbl.Balance)

	var errObj errorResponse
	assertPost(t, ts, "/table", map[string]interface{}{"name": "Te"}, &errObj, 400)
	a.Equal("name must be 3-40 characters", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/table", map[string]interface{}{"name": strings.Repeat("A", 41)}, &errObj, 400)
	a.Equal("name must be 3-40 characters", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/table", map[string]interface{}{"deckCount": 0}, &errObj, 400)
	a.Contains(errObj.Message, "deck count must be > 0")

	// not JSON
	assertPost(t, ts, "/table", "{", nil, 400)
}

func Test_getTableUUID(t *testing.T) {
	requireDB(t)
	a := assert.New(t)
	ts := newTestServer(t)

	var tbl *table.Table
	assertPost(t, ts, "/table", map[string]interface{}{"name": "Get Table"}, &tbl, 201)

	var found *table.Table
	assertGet(t, ts, "/table/"+tbl.UUID, &found, 200)
	a.Equal(tbl.UUID, found.UUID)
	a.Equal("Get Table", found.Name)

	var state testState
	assertGet(t, ts, "/table/"+tbl.UUID+"/state", &state, 200)
	a.Equal("idle", state.Phase)
	a.Equal(1000, state.Balance)
}

func Test_postTableUUIDAction(t *testing.T) {
	requireDB(t)
	a := assert.New(t)
	ts := newTestServer(t)

	var tbl *table.Table
	assertPost(t, ts, "/table", map[string]interface{}{"name": "Action Table"}, &tbl, 201)
	path := "/table/" + tbl.UUID + "/action"

	var errObj errorResponse
	assertPost(t, ts, path, gameAction("bet", playable.AdditionalData{"amount": 1}), &errObj, 400)
	a.Contains(errObj.Message, "below the minimum")

	errObj = errorResponse{}
	assertPost(t, ts, path, gameAction("stand", nil), &errObj, 400)
	a.Contains(errObj.Message, "not the player's turn")

	errObj = errorResponse{}
	assertPost(t, ts, path, gameAction("shuffle", nil), &errObj, 400)
	a.Contains(errObj.Message, "invalid action")

	var res testActionResponse
	assertPost(t, ts, path, gameAction("bet", playable.AdditionalData{"amount": 100}), &res, 200)
	a.Equal("status", res.Response.Key)

	// a blackjack on either side settles at the deal
	if res.State.Phase == "player-turn" {
		a.Equal(900, res.State.Balance)

		res = testActionResponse{}
		assertPost(t, ts, path, gameAction("stand", nil), &res, 200)
	}

	a.Equal("idle", res.State.Phase)
	a.NotEqual("null", string(res.State.LastResult))

	var rounds []*table.Round
	assertGet(t, ts, "/table/"+tbl.UUID+"/rounds", &rounds, 200)
	if a.Len(rounds, 1) {
		a.Equal(res.State.Balance, rounds[0].Balance)
		a.Equal(res.State.Balance-1000, rounds[0].Net)
	}

	assertGet(t, ts, "/table/"+tbl.UUID+"/rounds?rows=0", &errObj, 400)
}

func Test_getTableUUIDWS(t *testing.T) {
	requireDB(t)
	a := assert.New(t)
	ts := newTestServer(t)

	var tbl *table.Table
	assertPost(t, ts, "/table", map[string]interface{}{"name": "WS Table"}, &tbl, 201)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/" + tbl.UUID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if !a.NoError(err) {
		return
	}
	defer conn.Close()

	readUntil := func(key string) map[string]interface{} {
		t.Helper()
		for {
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

			var msg map[string]interface{}
			if err := conn.ReadJSON(&msg); err != nil {
				t.Fatal(err)
			}

			if msg["key"] == key {
				return msg
			}
		}
	}

	msg := readUntil("game")
	a.Equal("blackjack", msg["value"])

	a.NoError(conn.WriteJSON(gameAction("bet", playable.AdditionalData{"amount": 50})))

	msg = readUntil("log")
	a.NotEmpty(msg["data"])

	a.NoError(conn.WriteJSON(gameAction("hit-me", nil)))
	msg = readUntil("error")
	a.Contains(msg["value"], "invalid action")

	// garbage is answered without dropping the seat
	a.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"action": "game", "subject": `)))
	msg = readUntil("error")
	a.Contains(msg["value"], "malformed action")

	a.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"action": "game", "subject": "add-card", "cards": [{"rank": 14, "suit": "spades"}]}`)))
	msg = readUntil("error")
	a.Contains(msg["value"], "malformed action")

	a.NoError(conn.WriteJSON(gameAction("stand", nil)))
	msg = readUntil("game")
	a.Equal("blackjack", msg["value"])
}
