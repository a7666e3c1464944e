package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/playable/blackjack/simulate"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// CLI is the command line for the simulator
// Table defaults come from the server configuration
type CLI struct {
	Sessions    int      `default:"100" help:"Number of sessions to play"`
	Rounds      int      `default:"500" help:"Maximum rounds per session"`
	Seed        int64    `default:"0" help:"Seed of the first session (0 for random)"`
	Workers     int      `default:"4" help:"Sessions played at once"`
	Decks       *int     `help:"Decks in the shoe"`
	Penetration *float64 `help:"Percent of the shoe dealt before the cut card"`
	Balance     *int     `help:"Starting balance"`
	LogLevel    string   `default:"warn" enum:"trace,debug,info,warn,error" help:"Log level"`
}

func (c *CLI) options(cfg config.Table) simulate.Options {
	opts := simulate.Options{
		Sessions: c.Sessions,
		Rounds:   c.Rounds,
		Seed:     c.Seed,
		Workers:  c.Workers,
		Snapshot: blackjack.Snapshot{
			Balance:            cfg.StartingBalance,
			DeckCount:          cfg.DeckCount,
			PenetrationPercent: cfg.PenetrationPercent,
		},
		Game: blackjack.Options{
			MinBet:         cfg.MinBet,
			CutCardBuffer:  cfg.CutCardBuffer,
			DealerWatchdog: cfg.DealerWatchdog,
			MaxDealerSteps: cfg.MaxDealerSteps,
		},
	}

	if c.Decks != nil {
		opts.Snapshot.DeckCount = *c.Decks
	}

	if c.Penetration != nil {
		opts.Snapshot.PenetrationPercent = *c.Penetration
	}

	if c.Balance != nil {
		opts.Snapshot.Balance = *c.Balance
	}

	return opts
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Description("Plays blackjack sessions that follow the strategy advisor and bet spread."))

	level, err := logrus.ParseLevel(cli.LogLevel)
	kctx.FatalIfErrorf(err)

	logger := logrus.New()
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := cli.options(config.Instance().Table)
	summary, err := simulate.Run(ctx, logger, opts)
	kctx.FatalIfErrorf(err)

	fmt.Printf("sessions: %d (%d broke)\n", len(summary.Sessions), summary.Broke)
	fmt.Printf("rounds:   %d\n", summary.Rounds)
	fmt.Printf("wagered:  $%d\n", summary.Wagered)
	fmt.Printf("net:      $%d (%.2f%% of wagered)\n", summary.Net, summary.Edge()*100)

	outcomes := make([]string, 0, len(summary.Outcomes))
	for outcome := range summary.Outcomes {
		outcomes = append(outcomes, string(outcome))
	}

	sort.Strings(outcomes)
	for _, outcome := range outcomes {
		fmt.Printf("  %-10s %d\n", outcome, summary.Outcomes[blackjack.Outcome(outcome)])
	}
}
