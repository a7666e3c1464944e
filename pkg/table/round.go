package table

import (
	"context"
	"encoding/json"
	"time"

	"blackjack-server/pkg/db"
	"blackjack-server/pkg/playable/blackjack"
)

// Round is a record in the `rounds` table
type Round struct {
	ID        int64                 `json:"id"`
	TableUUID string                `json:"tableUuid"`
	Net       int                   `json:"net"`
	Balance   int                   `json:"balance"`
	Result    *blackjack.Settlement `json:"result"`
	Created   time.Time             `json:"created"`
}

const roundsColumns = `id, table_uuid, net, balance, data, created`

// RoundByID returns a round by its ID
func RoundByID(ctx context.Context, id int64) (*Round, error) {
	const query = `
SELECT ` + roundsColumns + `
FROM rounds
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return roundByRow(row)
}

func roundByRow(row db.Scanner) (*Round, error) {
	var r Round
	var data []byte

	if err := row.Scan(&r.ID, &r.TableUUID, &r.Net, &r.Balance, &data, &r.Created); err != nil {
		return nil, err
	}

	if data != nil {
		if err := json.Unmarshal(data, &r.Result); err != nil {
			return nil, err
		}
	}

	return &r, nil
}

// RecordRound saves a settled round and the resulting snapshot in a single transaction
func (t *Table) RecordRound(ctx context.Context, result *blackjack.Settlement, snapshot blackjack.Snapshot) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO rounds (table_uuid, net, balance, data)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	if err := tx.QueryRowContext(ctx, query, t.UUID, result.Net, snapshot.Balance, b).Scan(&id); err != nil {
		rollback(tx)
		return err
	}

	if err := t.saveSnapshot(ctx, tx, snapshot); err != nil {
		rollback(tx)
		return err
	}

	return tx.Commit()
}

// GetRounds returns the table's rounds, newest first
func (t *Table) GetRounds(ctx context.Context, offset int64, limit int) ([]*Round, error) {
	const query = `
SELECT ` + roundsColumns + `
FROM rounds
WHERE table_uuid = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, t.UUID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Round, 0)
	for rows.Next() {
		r, err := roundByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

// GetRoundsCount returns the number of rounds played at the table
func (t *Table) GetRoundsCount(ctx context.Context) (int64, error) {
	const query = `
SELECT COUNT(id)
FROM rounds
WHERE table_uuid = $1`

	var count int64
	if err := db.Instance().QueryRowContext(ctx, query, t.UUID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
