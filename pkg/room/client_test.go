package room

import (
	"encoding/json"
	"testing"

	"blackjack-server/pkg/playable"

	"github.com/stretchr/testify/assert"
)

func TestClient_ReceivedMessage_notSeated(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, newFakeTable())

	c.ReceivedMessage(msg("hit", nil))

	if a.Len(c.SendChan(), 1) {
		res := <-c.SendChan()
		a.Equal(playable.ErrorResponse(ErrNotSeated, "hit"), res)
	}
}

func TestClient_ReceivedMalformed(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, newFakeTable())

	var in playable.PayloadIn
	err := json.Unmarshal([]byte(`{"subject": 7}`), &in)
	a.Error(err)

	c.ReceivedMalformed(err)
	if a.Len(c.SendChan(), 1) {
		res := <-c.SendChan()
		a.Equal("error", res.Key)
		a.Contains(res.Value, "malformed action")
	}
}

func TestClient_Leave(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, newFakeTable())

	c.Leave("could not load table")
	c.Leave("second reason")

	a.Equal("could not load table", <-c.Leaving())
	a.Len(c.Leaving(), 0)
}
