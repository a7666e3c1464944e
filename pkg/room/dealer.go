package room

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// ErrShiftEnded is returned when a request reaches a dealer that is no longer running
var ErrShiftEnded = errors.New("dealer shift has ended")

// Game is a blackjack session the dealer runs
type Game interface {
	playable.Playable
	playable.Tickable

	// Snapshot returns the persistent state of the game
	Snapshot() blackjack.Snapshot

	// RunDealer ticks until the dealer turn is over
	RunDealer()

	// LastResult returns the most recent settlement
	LastResult() *blackjack.Settlement
}

// Table is a persisted session
type Table interface {
	ID() string
	Snapshot() blackjack.Snapshot
	SaveSnapshot(ctx context.Context, snapshot blackjack.Snapshot) error
	RecordRound(ctx context.Context, result *blackjack.Settlement, snapshot blackjack.Snapshot) error
}

// Dealer is responsible for controlling a single session
// Every game action and tick runs on the dealer's run loop
type Dealer struct {
	pitBoss *PitBoss
	table   Table
	game    Game
	logger  logrus.FieldLogger
	clock   quartz.Clock

	clients     map[*Client]bool
	lock        sync.RWMutex
	logMessages []*playable.LogMessage
	tickTimer   *quartz.Timer
	idleTimer   *quartz.Timer
	recorded    *blackjack.Settlement

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once

	// shiftLock guards ended so nothing is queued after the run loop drains
	shiftLock sync.RWMutex
	ended     bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table Table, game Game, logger logrus.FieldLogger, clock quartz.Clock) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		table:         table,
		game:          game,
		logger:        logger.WithField("uuid", table.ID()),
		clock:         clock,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	d.resetIdleTimer()
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.drainExec()
			if d.tickTimer != nil {
				d.tickTimer.Stop()
			}

			if d.idleTimer != nil {
				d.idleTimer.Stop()
			}

			d.save()
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
// The current snapshot is saved before the run loop exits
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		d.shiftLock.Lock()
		d.ended = true
		close(d.close)
		d.shiftLock.Unlock()
	})
}

// drainExec runs everything that was queued before the shift ended
// NOTE: must only be called from the run loop
func (d *Dealer) drainExec() {
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		default:
			return
		}
	}
}

// exec runs fn on the run loop and waits for it to finish
// Once fn is queued it always runs, even if the shift ends in the meantime
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan bool)
	wrapped := func() {
		fn()
		d.resetIdleTimer()
		close(done)
	}

	if err := d.enqueue(ctx, wrapped); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dealer) enqueue(ctx context.Context, fn func()) error {
	d.shiftLock.RLock()
	defer d.shiftLock.RUnlock()

	if d.ended {
		return ErrShiftEnded
	}

	select {
	case d.execInRunLoop <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		gs, err := d.game.GetState()
		if err != nil {
			d.logger.WithError(err).Error("could not get game state")
			return
		}

		client.Send(gs)
		if len(d.logMessages) > 0 {
			client.Send(newLogResponse(d.recentLogMessages()))
		}
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
// The dealer turn, if any, is played out one tick at a time
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		res, err := d.perform(msg, false)
		if err != nil {
			c.Send(playable.ErrorResponse(err, msg.Context))
			return
		}

		if res != nil {
			c.Send(res)
		}
	}
}

// Perform runs an action on the game and returns the response
// If runDealer is true, the dealer turn is played to completion before returning
func (d *Dealer) Perform(ctx context.Context, msg *playable.PayloadIn, runDealer bool) (*playable.Response, error) {
	var res *playable.Response
	var actionErr error
	if err := d.exec(ctx, func() {
		res, actionErr = d.perform(msg, runDealer)
	}); err != nil {
		return nil, err
	}

	return res, actionErr
}

// State returns the current state of the game
func (d *Dealer) State(ctx context.Context) (*playable.Response, error) {
	var res *playable.Response
	var stateErr error
	if err := d.exec(ctx, func() {
		res, stateErr = d.game.GetState()
	}); err != nil {
		return nil, err
	}

	return res, stateErr
}

// NOTE: must only be called from the run loop
func (d *Dealer) perform(msg *playable.PayloadIn, runDealer bool) (*playable.Response, error) {
	res, updateState, err := d.game.Action(msg)
	if err != nil {
		d.logger.WithError(err).WithField("subject", msg.Subject).Debug("could not perform action")
		return nil, err
	}

	if res != nil {
		res.Context = msg.Context
	}

	if runDealer && d.game.PendingTick() {
		d.game.RunDealer()
	}

	d.afterTransition(updateState)
	return res, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) afterTransition(updateState bool) {
	d.drainLogChan()

	if updateState {
		d.stateChanged <- stateGameEvent
	}

	if d.game.PendingTick() {
		d.scheduleTick()
		return
	}

	if result := d.game.LastResult(); result != nil && result != d.recorded {
		d.recorded = result
		d.recordRound(result)
		return
	}

	d.save()
}

// scheduleTick arranges for the next dealer step after the game's delay
// NOTE: must only be called from the run loop
func (d *Dealer) scheduleTick() {
	if d.tickTimer != nil {
		return
	}

	d.tickTimer = d.clock.AfterFunc(d.game.Delay(), func() {
		select {
		case d.execInRunLoop <- d.tick:
		case <-d.close:
		}
	})
}

// resetIdleTimer restarts the countdown to an idle check
// NOTE: must only be called from the run loop
func (d *Dealer) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}

	d.idleTimer = d.clock.AfterFunc(idleTimeout, func() {
		select {
		case d.execInRunLoop <- d.checkIdle:
		case <-d.close:
		}
	})
}

// checkIdle hands the dealer back to the pit boss when nobody is watching
// and the dealer has nothing left to play
// NOTE: must only be called from the run loop
func (d *Dealer) checkIdle() {
	d.idleTimer = nil
	if len(d.Clients()) > 0 || d.tickTimer != nil || d.game.PendingTick() {
		d.resetIdleTimer()
		return
	}

	d.logger.Debug("dealer is idle")
	if d.pitBoss != nil {
		d.pitBoss.dealerIdle(d)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	d.tickTimer = nil

	updated, err := d.game.Tick()
	if err != nil {
		d.logger.WithError(err).Error("could not tick game")
		return
	}

	d.afterTransition(updated)
}

// NOTE: must only be called from the run loop
func (d *Dealer) drainLogChan() {
	for {
		select {
		case messages := <-d.game.LogChan():
			d.addLogMessages(messages)
			res := newLogResponse(messages)
			for _, client := range d.Clients() {
				client.Send(res)
			}
		default:
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := d.table.SaveSnapshot(ctx, d.game.Snapshot()); err != nil {
		d.logger.WithError(err).Error("could not save snapshot")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) recordRound(result *blackjack.Settlement) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := d.table.RecordRound(ctx, result, d.game.Snapshot()); err != nil {
		d.logger.WithError(err).Error("could not record round")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	gs, err := d.game.GetState()
	if err != nil {
		d.logger.WithError(err).Error("could not get game state")
		return
	}

	for _, client := range d.Clients() {
		if !client.Send(gs) {
			client.Logger().Warn("client send buffer is full")
		}
	}
}

type clientState struct {
	Connected int `json:"connected"`
}

func (d *Dealer) sendClientState() {
	clients := d.Clients()
	res := &playable.Response{
		Key:  "clientState",
		Data: clientState{Connected: len(clients)},
	}

	for _, client := range clients {
		client.Send(res)
	}
}

func (d *Dealer) String() string {
	return fmt.Sprintf("dealer:%s", d.table.ID())
}
