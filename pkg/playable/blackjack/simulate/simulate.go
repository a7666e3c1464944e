// Package simulate plays blackjack sessions that follow the strategy advisor and the bet spread
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/playable/blackjack/strategy"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configures a simulation run
type Options struct {
	// Sessions is how many independent sessions to play
	Sessions int

	// Rounds is the most rounds a session plays; a session also stops when it can't cover the minimum bet
	Rounds int

	// Seed is the seed of the first session; each session after it uses the next seed
	// If zero, the current time is used
	Seed int64

	// Workers is how many sessions are played at once
	Workers int

	Snapshot blackjack.Snapshot
	Game     blackjack.Options
}

// SessionResult is the outcome of a single session
type SessionResult struct {
	Seed     int64                     `json:"seed"`
	Rounds   int                       `json:"rounds"`
	Net      int                       `json:"net"`
	Balance  int                       `json:"balance"`
	Wagered  int                       `json:"wagered"`
	Broke    bool                      `json:"broke"`
	Forced   int                       `json:"forced"`
	Outcomes map[blackjack.Outcome]int `json:"outcomes"`
}

// Summary totals every session
type Summary struct {
	Sessions []SessionResult           `json:"sessions"`
	Rounds   int                       `json:"rounds"`
	Net      int                       `json:"net"`
	Wagered  int                       `json:"wagered"`
	Broke    int                       `json:"broke"`
	Outcomes map[blackjack.Outcome]int `json:"outcomes"`
}

// Edge returns the net result as a fraction of everything wagered
func (s *Summary) Edge() float64 {
	if s.Wagered == 0 {
		return 0
	}

	return float64(s.Net) / float64(s.Wagered)
}

func (o Options) validate() error {
	if o.Sessions <= 0 {
		return errors.New("sessions must be > 0")
	}

	if o.Rounds <= 0 {
		return errors.New("rounds must be > 0")
	}

	if o.Workers <= 0 {
		return errors.New("workers must be > 0")
	}

	return nil
}

// Run plays every session and totals the results
func Run(ctx context.Context, logger logrus.FieldLogger, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	results := make([]SessionResult, opts.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Sessions; i++ {
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			result, err := PlaySession(ctx, logger.WithField("seed", seed), opts.Snapshot, opts.Game, seed, opts.Rounds)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Sessions: results,
		Outcomes: make(map[blackjack.Outcome]int),
	}

	for _, result := range results {
		summary.Rounds += result.Rounds
		summary.Net += result.Net
		summary.Wagered += result.Wagered
		if result.Broke {
			summary.Broke++
		}

		for outcome, n := range result.Outcomes {
			summary.Outcomes[outcome] += n
		}
	}

	return summary, nil
}

// PlaySession plays up to rounds rounds on a fresh shoe seeded with seed
// Every bet is the recommended bet and every decision is the advisor's
func PlaySession(ctx context.Context, logger logrus.FieldLogger, snapshot blackjack.Snapshot, opts blackjack.Options, seed int64, rounds int) (SessionResult, error) {
	opts.RNG = rng.NewSeeded(seed)

	result := SessionResult{
		Seed:     seed,
		Outcomes: make(map[blackjack.Outcome]int),
	}

	g, err := blackjack.NewGame(logger, snapshot, opts)
	if err != nil {
		return result, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go drain(ctx, g)

	for result.Rounds < rounds {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		bet := g.RecommendedBet()
		if bet > g.Balance() || g.Balance() < opts.MinBet {
			result.Broke = true
			break
		}

		if err := playRound(g, bet); err != nil {
			return result, err
		}

		settlement := g.LastResult()
		if settlement == nil {
			return result, fmt.Errorf("round %d did not settle", result.Rounds+1)
		}

		result.Rounds++
		if settlement.Forced {
			result.Forced++
		}

		for _, hand := range settlement.Hands {
			result.Wagered += hand.Bet
			result.Outcomes[hand.Outcome]++
		}
	}

	result.Balance = g.Balance()
	result.Net = result.Balance - snapshot.Balance
	return result, nil
}

func playRound(g *blackjack.Game, bet int) error {
	if err := g.PlaceBet(bet); err != nil {
		return err
	}

	for g.Phase() == blackjack.PhasePlayerTurn {
		if err := follow(g, g.Advice()); err != nil {
			return err
		}
	}

	g.RunDealer()
	return nil
}

func follow(g *blackjack.Game, advice strategy.Advice) error {
	switch advice.Action {
	case strategy.ActionHit:
		return g.Hit()
	case strategy.ActionDouble:
		return g.Double()
	case strategy.ActionSplit:
		return g.Split()
	}

	return g.Stand()
}

// drain discards the game's log messages so the channel never fills
func drain(ctx context.Context, g *blackjack.Game) {
	for {
		select {
		case <-g.LogChan():
		case <-ctx.Done():
			return
		}
	}
}
