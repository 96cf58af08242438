package memory

import (
	"context"
	"sync"

	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/models"
)

// RecordStore is an in-memory implementation of interfaces.RecordStore.
// It keeps records in a slice in append order and is safe for
// concurrent use.
type RecordStore struct {
	mu      sync.Mutex
	nextSeq int64
	records []models.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make([]models.Record, 0),
	}
}

// Append stores one record, assigning the next sequence number.
func (m *RecordStore) Append(ctx context.Context, rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	rec.Seq = m.nextSeq
	m.records = append(m.records, *rec)
	return nil
}

// ScanAll returns a copy of every record, oldest first, so callers
// cannot mutate internal state.
func (m *RecordStore) ScanAll(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Record, len(m.records))
	copy(copied, m.records)
	return copied, nil
}

var _ interfaces.RecordStore = (*RecordStore)(nil)
