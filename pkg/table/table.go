package table

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"blackjack-server/pkg/db"
	"blackjack-server/pkg/playable/blackjack"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tableColumns = `
tables.uuid,
tables.name,
tables.balance,
tables.deck_count,
tables.penetration_percent,
tables.created,
tables.updated`

// Table represents a blackjack session
// The balance and shoe configuration are the persisted snapshot of the game
type Table struct {
	UUID               string    `json:"uuid"`
	Name               string    `json:"name"`
	Balance            int       `json:"balance"`
	DeckCount          int       `json:"deckCount"`
	PenetrationPercent float64   `json:"penetrationPercent"`
	Created            time.Time `json:"created"`
	Updated            time.Time `json:"updated"`

	lock sync.RWMutex
}

// validateName returns a UserError if the name cannot be used for a table
func validateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 40 {
		return ErrInvalidName
	}

	return nil
}

// CreateTable creates a new table from the snapshot
func CreateTable(ctx context.Context, name string, snapshot blackjack.Snapshot) (*Table, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO tables (uuid, name, balance, deck_count, penetration_percent)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + tableColumns

	row := db.Instance().QueryRowContext(ctx, query, u, strings.TrimSpace(name), snapshot.Balance, snapshot.DeckCount, snapshot.PenetrationPercent)
	return getTableByRow(row)
}

func getTableByRow(row db.Scanner, additionalColumns ...interface{}) (*Table, error) {
	var t Table
	columns := []interface{}{
		&t.UUID,
		&t.Name,
		&t.Balance,
		&t.DeckCount,
		&t.PenetrationPercent,
		&t.Created,
		&t.Updated,
	}

	if len(additionalColumns) > 0 {
		columns = append(columns, additionalColumns...)
	}

	if err := row.Scan(columns...); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// ID returns the UUID of the table
func (t *Table) ID() string {
	return t.UUID
}

// Snapshot returns the persisted state of the game
func (t *Table) Snapshot() blackjack.Snapshot {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return blackjack.Snapshot{
		Balance:            t.Balance,
		DeckCount:          t.DeckCount,
		PenetrationPercent: t.PenetrationPercent,
	}
}

// SaveSnapshot persists the game state
func (t *Table) SaveSnapshot(ctx context.Context, snapshot blackjack.Snapshot) error {
	return t.saveSnapshot(ctx, db.Instance(), snapshot)
}

type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (t *Table) saveSnapshot(ctx context.Context, e execer, snapshot blackjack.Snapshot) error {
	const query = `
UPDATE tables
SET balance = $1, deck_count = $2, penetration_percent = $3, updated = NOW() AT TIME ZONE 'UTC'
WHERE uuid = $4
RETURNING updated`

	var updated time.Time
	row := e.QueryRowContext(ctx, query, snapshot.Balance, snapshot.DeckCount, snapshot.PenetrationPercent, t.UUID)
	if err := row.Scan(&updated); err != nil {
		return err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.Balance = snapshot.Balance
	t.DeckCount = snapshot.DeckCount
	t.PenetrationPercent = snapshot.PenetrationPercent
	t.Updated = updated
	return nil
}

// Reload will refresh the data from the database
func (t *Table) Reload(ctx context.Context) error {
	tbl, err := GetTableByUUID(ctx, t.UUID)
	if err != nil {
		return err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.Name = tbl.Name
	t.Balance = tbl.Balance
	t.DeckCount = tbl.DeckCount
	t.PenetrationPercent = tbl.PenetrationPercent
	t.Created = tbl.Created
	t.Updated = tbl.Updated
	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
