package room

import (
	"context"

	"blackjack-server/pkg/playable/blackjack"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

// GameFactory creates a game from a saved snapshot
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, snapshot blackjack.Snapshot) (Game, error)
}

type dealerRequest struct {
	table Table
	reply chan dealerReply
}

type dealerReply struct {
	dealer *Dealer
	err    error
}

// PitBoss is responsible for dispatching clients and requests to dealers
// There is at most one dealer per table
type PitBoss struct {
	factory GameFactory
	logger  logrus.FieldLogger
	clock   quartz.Clock

	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	idle       chan *Dealer
	requests   chan dealerRequest
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(factory GameFactory, logger logrus.FieldLogger, clock quartz.Clock) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if clock == nil {
		clock = quartz.NewReal()
	}

	return &PitBoss{
		factory:    factory,
		logger:     logger,
		clock:      clock,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		idle:       make(chan *Dealer, 256),
		requests:   make(chan dealerRequest, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			client.Logger().Debug("client connected")
			dealer, err := p.dealerFor(client.table)
			if err != nil {
				client.Logger().WithError(err).Error("could not start dealer")
				client.Leave("could not load table")
				continue
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			client.Logger().Debug("client disconnected")
			dealer, found := p.dealers[client.table.ID()]
			if !found {
				p.logger.WithField("uuid", client.table.ID()).WithField("type", "exception").Error("table not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.table.ID())
			}
		case dealer := <-p.idle:
			id := dealer.table.ID()
			if p.dealers[id] != dealer || len(dealer.Clients()) > 0 {
				continue
			}

			p.logger.WithField("uuid", id).Info("ending idle shift")
			dealer.EndShift()
			delete(p.dealers, id)
		case req := <-p.requests:
			dealer, err := p.dealerFor(req.table)
			req.reply <- dealerReply{dealer: dealer, err: err}
		}
	}
}

// dealerFor returns the table's dealer, starting a new shift if needed
// NOTE: must only be called from the run loop
func (p *PitBoss) dealerFor(table Table) (*Dealer, error) {
	if dealer, found := p.dealers[table.ID()]; found {
		return dealer, nil
	}

	logger := p.logger.WithField("uuid", table.ID())
	game, err := p.factory.CreateGame(logger, table.Snapshot())
	if err != nil {
		return nil, err
	}

	dealer := NewDealer(p, table, game, p.logger, p.clock)
	dealer.StartShift()
	p.dealers[table.ID()] = dealer

	return dealer, nil
}

// Dealer returns the dealer running the table
func (p *PitBoss) Dealer(ctx context.Context, table Table) (*Dealer, error) {
	req := dealerRequest{
		table: table,
		reply: make(chan dealerReply, 1),
	}

	select {
	case p.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case reply := <-req.reply:
		return reply.dealer, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// dealerIdle is called by a dealer with no clients and no dealer turn in progress
func (p *PitBoss) dealerIdle(dealer *Dealer) {
	select {
	case p.idle <- dealer:
	default:
		dealer.logger.Warn("could not report idle dealer")
	}
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
