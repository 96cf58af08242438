package interfaces

import (
	"context"

	"github.com/smallkid/line-ledger-bot/internal/models"
)

// RecordStore is the append-only log the ledger is built on. The store
// never updates or deletes rows.
//
// Implementations must guarantee insertion-order iteration: ScanAll
// returns rows oldest first, in the order Append accepted them, and
// stamps each record with a monotonic Seq at append time so the order
// stays explicit even for backends without cheap natural ordering.
type RecordStore interface {
	Append(ctx context.Context, rec *models.Record) error
	ScanAll(ctx context.Context) ([]models.Record, error)
}
