package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/models"
)

// RecordStore is a Postgres-backed implementation of
// interfaces.RecordStore. Rows are append-only; ordering is carried by
// the seq column rather than left to insertion order.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{
		db: db,
	}
}

// InitTable creates the records table if it does not exist. Timestamp
// and amount are stored as text: the timestamp format is fixed and
// prefix-filterable, and amounts from legacy rows may not parse, which
// readers handle per row.
func (p *RecordStore) InitTable(ctx context.Context) error {
	const query = `
	CREATE TABLE IF NOT EXISTS records (
		seq        BIGSERIAL PRIMARY KEY,
		id         TEXT NOT NULL,
		ts         TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		context_id TEXT NOT NULL,
		amount     TEXT NOT NULL,
		memo       TEXT NOT NULL,
		raw_text   TEXT NOT NULL
	)`

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (p *RecordStore) Append(ctx context.Context, rec *models.Record) error {
	const query = `INSERT INTO records (id, ts, user_id, context_id, amount, memo, raw_text)
	VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING seq`

	return p.db.QueryRowContext(ctx, query,
		rec.ID, rec.Timestamp, rec.UserID, rec.ContextID, rec.Amount, rec.Memo, rec.RawText,
	).Scan(&rec.Seq)
}

func (p *RecordStore) ScanAll(ctx context.Context) ([]models.Record, error) {
	const query = `SELECT seq, id, ts, user_id, context_id, amount, memo, raw_text
	FROM records ORDER BY seq ASC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(
			&rec.Seq,
			&rec.ID,
			&rec.Timestamp,
			&rec.UserID,
			&rec.ContextID,
			&rec.Amount,
			&rec.Memo,
			&rec.RawText,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

var _ interfaces.RecordStore = (*RecordStore)(nil)
