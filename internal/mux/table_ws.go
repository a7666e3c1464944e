package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/table"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// maxActionSize caps a single action payload from a client
const maxActionSize = 4096

func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).WithField("uuid", tbl.ID()).Error("could not upgrade table connection")
			return
		}

		conn.SetReadLimit(maxActionSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, tbl)
		m.pitBoss.ClientConnected(client)

		readDone := make(chan bool)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			_ = conn.Close()
			close(readDone)
		}()

		go m.writeResponses(client, readDone)
		m.readActions(client)
	}
}

// writeResponses sends everything the dealer queues for the client, plus keepalive pings
func (m *Mux) writeResponses(client *room.Client, readDone chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Leaving():
			client.Logger().WithField("reason", reason).Info("closing table connection")
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			select {
			case <-readDone:
			case <-time.After(time.Second):
			}
			return
		case res := <-client.SendChan():
			logResponse(client, res)

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(res); err != nil {
				client.Logger().WithError(err).WithField("key", res.Key).Error("could not write response")
				return
			}
		}
	}
}

func logResponse(client *room.Client, res *playable.Response) {
	entry := client.Logger().WithFields(logrus.Fields{
		"key":     res.Key,
		"context": res.Context,
	})

	if res.Key == "error" {
		entry.WithField("error", res.Value).Debug("rejected action")
		return
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		data, _ := json.Marshal(res.Data)
		entry.WithField("data", string(data)).Trace("sending response")
	}
}

// readActions hands each action to the dealer until the connection closes
// A payload that is not an action is answered with an error and reading continues
func (m *Mux) readActions(client *room.Client) {
	for {
		var msg playable.PayloadIn
		err := client.Conn.ReadJSON(&msg)

		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case err == nil:
			client.ReceivedMessage(&msg)
		case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, deck.ErrInvalidCard):
			client.ReceivedMalformed(err)
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			client.Logger().Debug("client left the table")
			return
		default:
			client.Logger().WithError(err).Warn("table connection lost")
			return
		}
	}
}
