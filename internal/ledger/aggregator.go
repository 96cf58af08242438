package ledger

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/models"
)

// Aggregator folds the record store into per-context balances and
// windowed record lists. Nothing is cached: every query is a full scan,
// so results always reflect the latest durable write the scan sees.
type Aggregator struct {
	store interfaces.RecordStore
}

func NewAggregator(store interfaces.RecordStore) *Aggregator {
	return &Aggregator{store: store}
}

// matches applies the per-record context predicate. A record belongs to
// a group ledger iff its context id equals the group id, and to a
// private ledger iff the user ids match and the context id is the
// private sentinel (or the legacy empty string). The two predicates are
// disjoint, so no record is ever double-counted.
func matches(rec *models.Record, lc models.LedgerContext) bool {
	if lc.Scope == models.ScopeGroup {
		return rec.ContextID == lc.ID
	}
	return rec.IsPrivate() && rec.UserID == lc.UserID
}

// Matching returns the records of one context, most recent first, and
// the signed sum of their amounts. window is a timestamp prefix such as
// "2025-11"; empty means no time filtering. Records whose amount does
// not parse are skipped so a malformed legacy row cannot corrupt the
// rest of the aggregate. An empty result is the normal no-transactions
// state, not an error.
func (a *Aggregator) Matching(ctx context.Context, lc models.LedgerContext, window string) ([]models.Record, float64, error) {
	rows, err := a.store.ScanAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	var out []models.Record
	total := 0.0

	// The store is append-ordered, so walking backwards yields recency
	// order without depending on timestamp comparison.
	for i := len(rows) - 1; i >= 0; i-- {
		rec := rows[i]
		if window != "" && !strings.HasPrefix(rec.Timestamp, window) {
			continue
		}
		if !matches(&rec, lc) {
			continue
		}
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			continue
		}
		total += amount
		out = append(out, rec)
	}

	return out, total, nil
}

// Balance returns the signed sum over every record of the context.
func (a *Aggregator) Balance(ctx context.Context, lc models.LedgerContext) (float64, error) {
	_, total, err := a.Matching(ctx, lc, "")
	return total, err
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
