package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/models"
)

// Writer appends validated records to the store. By the time a delta
// and memo reach it, parsing and evaluation have already succeeded
// upstream; the Writer never rejects data and performs no retries.
type Writer struct {
	store interfaces.RecordStore
	loc   *time.Location
	now   func() time.Time
}

func NewWriter(store interfaces.RecordStore, loc *time.Location) *Writer {
	return &Writer{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// Append writes exactly one record with a freshly assigned timestamp in
// the configured fixed zone.
func (w *Writer) Append(ctx context.Context, lc models.LedgerContext, delta float64, memo, rawText string) (*models.Record, error) {
	rec := &models.Record{
		ID:        uuid.New().String(),
		Timestamp: w.now().In(w.loc).Format(models.TimestampLayout),
		UserID:    lc.UserID,
		ContextID: lc.ID,
		Amount:    strconv.FormatFloat(delta, 'f', -1, 64),
		Memo:      memo,
		RawText:   rawText,
	}
	if err := w.store.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
