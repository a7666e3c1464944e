package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/mux"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room/gamefactory"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// run the db migrations
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, newGameFactory(config.Instance().Table)))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func newGameFactory(cfg config.Table) gamefactory.Blackjack {
	return gamefactory.Blackjack{
		Options: blackjack.Options{
			MinBet:          cfg.MinBet,
			CutCardBuffer:   cfg.CutCardBuffer,
			DealerStepDelay: cfg.DealerStepDelay,
			DealerWatchdog:  cfg.DealerWatchdog,
			MaxDealerSteps:  cfg.MaxDealerSteps,
		},
		Defaults: blackjack.Snapshot{
			Balance:            cfg.StartingBalance,
			DeckCount:          cfg.DeckCount,
			PenetrationPercent: cfg.PenetrationPercent,
		},
		CryptoShuffle: cfg.CryptoShuffle,
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
