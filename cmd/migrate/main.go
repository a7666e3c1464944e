package main

import (
	"time"

	"blackjack-server/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {
	waitForDB()
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	defer timeout.Stop()

	for {
		err := db.Available()
		if err == nil {
			return
		}

		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}
