package mux

import (
	"context"
	"net/http"

	"blackjack-server/pkg/room"
	"blackjack-server/pkg/room/gamefactory"
	"blackjack-server/pkg/table"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxTableKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	factory gamefactory.Blackjack
	pitBoss *room.PitBoss

	// store for testing purposes
	tableRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, factory gamefactory.Blackjack) *Mux {
	pitBoss := room.NewPitBoss(factory, logrus.StandardLogger(), nil)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		factory: factory,
		pitBoss: pitBoss,
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())
	}

	// requires a valid table
	{
		tr := this.Router.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)
		this.tableRouter = tr

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/state").Handler(this.getTableUUIDState())
		tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
		tr.Methods(http.MethodGet).Path("/rounds").Handler(this.getTableUUIDRounds())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	}

	return this
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		tbl, err := table.GetTableByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
