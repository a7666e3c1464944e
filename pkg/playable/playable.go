package playable

import (
	"fmt"
	"time"

	"blackjack-server/pkg/deck"

	"github.com/google/uuid"
)

// Playable is a game that can be played
type Playable interface {
	// Action performs with a message
	// If response is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(message *PayloadIn) (response *Response, updateState bool, err error)

	// GetState returns the current state of the game
	GetState() (*Response, error)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
type LogMessage struct {
	UUID    string      `json:"uuid"`
	Cards   []deck.Card `json:"cards"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

// Response is a container for a message sent to the client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns a response carrying an advisory error message
func ErrorResponse(err error, ctx ...string) *Response {
	res := &Response{
		Key:   "error",
		Value: err.Error(),
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	Cards          []deck.Card    `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// GetFloat returns a float value for the given key
func (a AdditionalData) GetFloat(key string) (float64, bool) {
	switch val := a[key].(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	}

	return 0, false
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(cards []deck.Card, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		Cards:   cards,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(cards []deck.Card, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(cards, format, a...)}
}
