package mux

import (
	"net/http"

	"blackjack-server/pkg/db"

	"github.com/sirupsen/logrus"
)

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// getHealth reports the server as up even when Postgres is not reachable
// Tables cannot be created or loaded until the database is back
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := healthResponse{
			Status:   "OK",
			Version:  m.version,
			Database: "OK",
		}

		if err := db.Available(); err != nil {
			logrus.WithError(err).Warn("database is not available")
			payload.Database = "unavailable"
		}

		writeJSON(w, http.StatusOK, payload)
	}
}
