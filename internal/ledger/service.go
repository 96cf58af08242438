package ledger

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/smallkid/line-ledger-bot/internal/command"
	"github.com/smallkid/line-ledger-bot/internal/expr"
	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/models"
	evt "github.com/smallkid/line-ledger-bot/internal/models/events"
)

// TopicRecordAppended is the event topic for durably appended records.
const TopicRecordAppended = "ledger_record_appended"

// reportRows caps how many rows a report lists; count and total still
// cover the whole window.
const reportRows = 10

// displayTimeLayout is the compact per-row time shown in reports.
const displayTimeLayout = "01/02 15:04"

// Service processes one inbound message end to end: keyword routing,
// transaction parsing, append, and balance recomputation. It holds no
// per-context state; every balance comes from a fresh scan.
type Service struct {
	agg       *Aggregator
	writer    *Writer
	publisher interfaces.EventPublisher // optional, may be nil
	loc       *time.Location
	now       func() time.Time
}

// NewService wires the aggregation and writing halves over one store.
// publisher may be nil when no event pipeline is configured.
func NewService(store interfaces.RecordStore, publisher interfaces.EventPublisher, loc *time.Location) *Service {
	return &Service{
		agg:       NewAggregator(store),
		writer:    NewWriter(store, loc),
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}
}

// HandleMessage turns one inbound event into an outcome for the
// presentation layer. Ordinary chat comes back as OutcomeIgnored; the
// only failure surfaced without detail is the store being unreachable.
func (s *Service) HandleMessage(ctx context.Context, ev models.InboundEvent) models.Outcome {
	lc := Resolve(ev)

	switch command.Route(ev.Text) {
	case command.KeywordBalance:
		return s.balance(ctx, lc)
	case command.KeywordReport:
		return s.report(ctx, lc)
	}

	tx, err := command.Parse(ev.Text)
	if err != nil {
		return parseOutcome(err)
	}

	rec, err := s.writer.Append(ctx, lc, tx.Delta, tx.Memo, ev.Text)
	if err != nil {
		log.Printf("record append failed: %v", err)
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorStoreUnavailable}
	}

	balance, err := s.agg.Balance(ctx, lc)
	if err != nil {
		log.Printf("balance scan failed: %v", err)
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorStoreUnavailable}
	}

	s.publish(rec, tx.Delta)

	return models.Outcome{
		Kind: models.OutcomeApplied,
		Applied: &models.Applied{
			Delta:      tx.Delta,
			Expression: tx.Expression,
			Memo:       tx.Memo,
			Previous:   balance - tx.Delta,
			Balance:    balance,
		},
	}
}

func parseOutcome(err error) models.Outcome {
	switch {
	case errors.Is(err, command.ErrNotTransaction):
		// Ordinary chat. Absorbed completely, no reply.
		return models.Outcome{Kind: models.OutcomeIgnored}
	case errors.Is(err, expr.ErrDisallowedOperation):
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorDisallowedOperation}
	default:
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorInvalidExpression}
	}
}

func (s *Service) balance(ctx context.Context, lc models.LedgerContext) models.Outcome {
	balance, err := s.agg.Balance(ctx, lc)
	if err != nil {
		log.Printf("balance scan failed: %v", err)
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorStoreUnavailable}
	}
	return models.Outcome{Kind: models.OutcomeBalance, Balance: balance}
}

func (s *Service) report(ctx context.Context, lc models.LedgerContext) models.Outcome {
	window := s.now().In(s.loc).Format("2006-01")

	records, total, err := s.agg.Matching(ctx, lc, window)
	if err != nil {
		log.Printf("report scan failed: %v", err)
		return models.Outcome{Kind: models.OutcomeError, Err: models.ErrorStoreUnavailable}
	}

	report := &models.Report{
		Window: window,
		Count:  len(records),
		Total:  total,
	}
	for _, rec := range records {
		if len(report.Rows) == reportRows {
			break
		}
		amount, _ := parseAmount(rec.Amount)
		report.Rows = append(report.Rows, models.ReportRow{
			Time:   displayTime(rec.Timestamp),
			Amount: amount,
			Memo:   rec.Memo,
		})
	}

	return models.Outcome{Kind: models.OutcomeReport, Report: report}
}

// displayTime reformats a persisted timestamp for report rows, falling
// back to the raw string for rows that predate the fixed layout.
func displayTime(ts string) string {
	t, err := time.Parse(models.TimestampLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format(displayTimeLayout)
}

func (s *Service) publish(rec *models.Record, delta float64) {
	if s.publisher == nil {
		return
	}
	event := evt.RecordAppended{
		RecordID:   rec.ID,
		UserID:     rec.UserID,
		ContextID:  rec.ContextID,
		Amount:     delta,
		Memo:       rec.Memo,
		OccurredAt: s.now(),
	}
	// Event delivery is best effort; a broker outage must not fail the
	// transaction the user already sees as recorded.
	if err := s.publisher.Publish(TopicRecordAppended, event); err != nil {
		log.Printf("publish %s failed: %v", TopicRecordAppended, err)
	}
}
