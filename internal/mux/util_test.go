package mux

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_parsePaginationOptions(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	start, rows, err := parsePaginationOptions(req(""))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, defaultRows, rows)

	start, rows, err = parsePaginationOptions(req("?start=10&rows=25"))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), start)
	assert.Equal(t, 25, rows)

	start, rows, err = parsePaginationOptions(req("?start=-1&rows=25"))
	assert.EqualError(t, err, "start cannot be less than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req("?start=0&rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req(fmt.Sprintf("?start=0&rows=%d", maxRows+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxRows))
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)
}

func Test_writeJSONError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad bet"))
	a.Equal(http.StatusBadRequest, w.Code)
	a.Equal("application/json", w.Header().Get("Content-Type"))
	a.JSONEq(`{"message":"bad bet","statusCode":400}`, w.Body.String())

	// server errors are not leaked
	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errors.New("connection refused"))
	a.JSONEq(`{"message":"Internal Server Error","statusCode":500}`, w.Body.String())

	w = httptest.NewRecorder()
	writeMaybeNotFoundError(w, fmt.Errorf("lookup: %w", sql.ErrNoRows))
	a.Equal(http.StatusNotFound, w.Code)
}

func Test_decodeRequest(t *testing.T) {
	a := assert.New(t)

	var payload map[string]interface{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusUnsupportedMediaType, w.Code)
}
