package mux

import (
	"context"
	"errors"
	"net/http"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/table"

	"github.com/sirupsen/logrus"
)

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playable.AdditionalData
		if !decodeRequest(w, r, &payload) {
			return
		}

		name, _ := payload.GetString("name")
		if name == "" {
			name = util.GetRandomName()
		}

		snapshot, err := m.factory.Details(payload)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tbl, err := table.CreateTable(r.Context(), name, snapshot)
		if err != nil {
			if table.IsUserError(err) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		logrus.WithFields(logrus.Fields{
			"uuid":       tbl.UUID,
			"remoteAddr": remoteAddr(r),
		}).Info("table created")
		writeJSON(w, http.StatusCreated, tbl)
	}
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		writeJSON(w, http.StatusOK, tbl)
	})
}

// withDealer runs fn with the table's dealer
// A dealer can end its shift between lookup and use, so that case is retried once with a new dealer
func (m *Mux) withDealer(ctx context.Context, tbl *table.Table, fn func(d *room.Dealer) error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		var dealer *room.Dealer
		dealer, err = m.pitBoss.Dealer(ctx, tbl)
		if err != nil {
			return err
		}

		if err = fn(dealer); !errors.Is(err, room.ErrShiftEnded) {
			return err
		}
	}

	return err
}

func (m *Mux) getTableUUIDState() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		var res *playable.Response
		err := m.withDealer(r.Context(), tbl, func(d *room.Dealer) error {
			var err error
			res, err = d.State(r.Context())
			return err
		})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, res.Data)
	})
}

type actionResponse struct {
	Response *playable.Response `json:"response"`
	State    interface{}        `json:"state"`
}

func (m *Mux) postTableUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		var msg playable.PayloadIn
		if !decodeRequest(w, r, &msg) {
			return
		}

		var res actionResponse
		err := m.withDealer(r.Context(), tbl, func(d *room.Dealer) error {
			var err error
			if res.Response, err = d.Perform(r.Context(), &msg, true); err != nil {
				return err
			}

			state, err := d.State(r.Context())
			if err != nil {
				return err
			}

			res.State = state.Data
			return nil
		})

		if err != nil {
			if blackjack.IsUserError(err) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, res)
	})
}

func (m *Mux) getTableUUIDRounds() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		rounds, err := tbl.GetRounds(r.Context(), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, rounds)
	})
}
