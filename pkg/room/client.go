package room

import (
	"errors"
	"fmt"

	"blackjack-server/pkg/playable"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ErrNotSeated is returned to a client that sends an action before its dealer picks it up
var ErrNotSeated = errors.New("not seated at the table yet")

// ErrMalformedAction is returned to a client that sends something other than an action payload
var ErrMalformedAction = errors.New("malformed action")

// Client is a player watching a table over a websocket
// Everything the dealer sends is a *playable.Response
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	send    chan *playable.Response
	leaving chan string

	dealer *Dealer
	logger logrus.FieldLogger

	id    string
	table Table
}

// NewClient returns a new client seated at table
func NewClient(conn *websocket.Conn, table Table) *Client {
	id := uuid.New().String()
	return &Client{
		Conn:    conn,
		send:    make(chan *playable.Response, 256),
		leaving: make(chan string, 1),
		logger: logrus.WithFields(logrus.Fields{
			"client": id,
			"uuid":   table.ID(),
		}),
		id:    id,
		table: table,
	}
}

// Send queues a response for the client
// Returns false if the client is not keeping up
func (c *Client) Send(res *playable.Response) bool {
	select {
	case c.send <- res:
		return true
	default:
		return false
	}
}

// SendChan returns the queued responses
func (c *Client) SendChan() <-chan *playable.Response {
	return c.send
}

// Leave asks the connection to close with reason
// Only the first reason is kept
func (c *Client) Leave(reason string) {
	select {
	case c.leaving <- reason:
	default:
	}
}

// Leaving receives the reason the client was asked to leave
func (c *Client) Leaving() <-chan string {
	return c.leaving
}

// Logger returns a logger tagged with the client and its table
func (c *Client) Logger() logrus.FieldLogger {
	return c.logger
}

// ReceivedMessage hands an action from the client to the table's dealer
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		c.logger.WithField("subject", msg.Subject).Warn("received action before the dealer was ready")
		c.Send(playable.ErrorResponse(ErrNotSeated, msg.Context))
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

// ReceivedMalformed tells the client its last payload could not be read as an action
func (c *Client) ReceivedMalformed(err error) {
	c.logger.WithError(err).Debug("could not decode action")
	c.Send(playable.ErrorResponse(fmt.Errorf("%w: %v", ErrMalformedAction, err)))
}
