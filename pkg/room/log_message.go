package room

import (
	"time"

	"blackjack-server/pkg/playable"
)

// logMessageLimit is how many log messages a newly connected client receives
const logMessageLimit = 25

// saveTimeout is how long a snapshot save may take
const saveTimeout = 5 * time.Second

// idleTimeout is how long a dealer without clients waits before its shift ends
const idleTimeout = 10 * time.Minute

// addLogMessages keeps the most recent logMessageLimit messages
// NOTE: must only be called from the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	d.logMessages = append(d.logMessages, messages...)
	if extra := len(d.logMessages) - logMessageLimit; extra > 0 {
		d.logMessages = append(d.logMessages[:0:0], d.logMessages[extra:]...)
	}
}

// recentLogMessages returns a copy that is safe to hand to a client
// NOTE: must only be called from the run loop
func (d *Dealer) recentLogMessages() []*playable.LogMessage {
	return append([]*playable.LogMessage(nil), d.logMessages...)
}

func newLogResponse(messages []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  "log",
		Data: messages,
	}
}
